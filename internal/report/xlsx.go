// Package report renders screening results to files for reviewers.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/scholarly-group/screening-cli/internal/model"
)

// WriteXLSX writes the screening result as a workbook with one sheet per
// concern: criteria, per-criterion statistics, selected papers, and stage
// timings.
func WriteXLSX(result *model.ScreeningResult, path string) error {
	f := xlsx.NewFile()

	if err := addCriteriaSheet(f, result); err != nil {
		return err
	}
	if err := addStatisticsSheet(f, result); err != nil {
		return err
	}
	if err := addSelectedSheet(f, result); err != nil {
		return err
	}
	if err := addStagesSheet(f, result); err != nil {
		return err
	}

	return eris.Wrapf(f.Save(path), "report: save %s", path)
}

func addCriteriaSheet(f *xlsx.File, result *model.ScreeningResult) error {
	sheet, err := f.AddSheet("Criteria")
	if err != nil {
		return eris.Wrap(err, "report: add criteria sheet")
	}

	addHeaderRow(sheet, "ID", "Criterion", "Description", "Evaluation Focus")
	for _, c := range result.GeneratedCriteria {
		row := sheet.AddRow()
		row.AddCell().SetInt(c.ID)
		row.AddCell().Value = c.Criterion
		row.AddCell().Value = c.Description
		row.AddCell().Value = c.EvaluationFocus
	}
	return nil
}

func addStatisticsSheet(f *xlsx.File, result *model.ScreeningResult) error {
	sheet, err := f.AddSheet("Statistics")
	if err != nil {
		return eris.Wrap(err, "report: add statistics sheet")
	}

	addHeaderRow(sheet, "Criterion ID", "Yes", "Maybe", "No", "Total")

	ids := make([]int, 0, len(result.CriteriaStatistics))
	for id := range result.CriteriaStatistics {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		stats := result.CriteriaStatistics[id]
		row := sheet.AddRow()
		row.AddCell().SetInt(id)
		row.AddCell().SetInt(stats.YesCount)
		row.AddCell().SetInt(stats.MaybeCount)
		row.AddCell().SetInt(stats.NoCount)
		row.AddCell().SetInt(stats.Total())
	}
	return nil
}

func addSelectedSheet(f *xlsx.File, result *model.ScreeningResult) error {
	sheet, err := f.AddSheet("Selected Papers")
	if err != nil {
		return eris.Wrap(err, "report: add selected sheet")
	}

	addHeaderRow(sheet,
		"Rank", "Paper ID", "Title", "Score", "Eligible",
		"Yes", "Maybe", "No", "Authors", "Publication Year", "Journal", "Domain",
	)
	for _, p := range result.SelectedPapers {
		row := sheet.AddRow()
		row.AddCell().SetInt(p.Rank)
		row.AddCell().SetInt(p.PaperID)
		row.AddCell().Value = p.Title
		row.AddCell().SetInt(p.EligibilityScore)
		row.AddCell().Value = fmt.Sprintf("%t", p.IsEligible)
		row.AddCell().SetInt(p.CriteriaResults.YesCount)
		row.AddCell().SetInt(p.CriteriaResults.MaybeCount)
		row.AddCell().SetInt(p.CriteriaResults.NoCount)
		row.AddCell().Value = strings.Join(p.Metadata.Authors, "; ")
		row.AddCell().Value = p.Metadata.Year
		row.AddCell().Value = p.Metadata.Journal
		row.AddCell().Value = p.Metadata.ResearchDomain
	}
	return nil
}

func addStagesSheet(f *xlsx.File, result *model.ScreeningResult) error {
	sheet, err := f.AddSheet("Stages")
	if err != nil {
		return eris.Wrap(err, "report: add stages sheet")
	}

	addHeaderRow(sheet, "Stage", "Status", "Duration (ms)", "Input Tokens", "Output Tokens", "Error")
	for _, st := range result.Stages {
		row := sheet.AddRow()
		row.AddCell().Value = st.Name
		row.AddCell().Value = st.Status
		row.AddCell().SetInt(int(st.DurationMS))
		row.AddCell().SetInt(st.TokenUsage.InputTokens)
		row.AddCell().SetInt(st.TokenUsage.OutputTokens)
		row.AddCell().Value = st.Error
	}
	return nil
}

func addHeaderRow(sheet *xlsx.Sheet, headers ...string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().Value = h
	}
}
