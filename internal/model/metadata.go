package model

// NotSpecified is the sentinel value for metadata fields that could not be
// extracted from the gateway response.
const NotSpecified = "Not specified"

// degradedSummaryLimit caps the abstract excerpt used when extraction fails.
const degradedSummaryLimit = 200

// PaperMetadata is the structured metadata extracted for one paper.
// PaperID and OriginalIndex are assigned at extraction time and preserved
// unchanged through the rest of the pipeline.
type PaperMetadata struct {
	PaperID         int      `json:"paper_id"`       // 1-based, stable across all stages
	OriginalIndex   int      `json:"original_index"` // 0-based index into the input batch
	Title           string   `json:"title"`
	Authors         []string `json:"authors"`
	Journal         string   `json:"journal"`
	Year            string   `json:"year"`
	Keywords        []string `json:"keywords"`
	ResearchDomain  string   `json:"research_domain"`
	Methodology     string   `json:"methodology"`
	SampleSize      string   `json:"sample_size"`
	StudyType       string   `json:"study_type"`
	MainFindings    string   `json:"main_findings"`
	Limitations     string   `json:"limitations"`
	AbstractSummary string   `json:"abstract_summary"`

	// Fallback marks a degraded record substituted after a per-paper parse
	// failure, so callers can detect the fallback path without matching
	// sentinel strings.
	Fallback bool `json:"fallback,omitempty"`
}

// DegradedMetadata builds the fallback metadata record for a paper whose
// extraction response could not be parsed. The paper's own title and a
// 200-character abstract excerpt are kept; everything else is the
// NotSpecified sentinel. Per-paper containment: this never aborts the stage.
func DegradedMetadata(paper Paper, index int) PaperMetadata {
	return PaperMetadata{
		PaperID:         index + 1,
		OriginalIndex:   index,
		Title:           paper.Title,
		Authors:         []string{},
		Journal:         NotSpecified,
		Year:            NotSpecified,
		Keywords:        []string{},
		ResearchDomain:  NotSpecified,
		Methodology:     NotSpecified,
		SampleSize:      NotSpecified,
		StudyType:       NotSpecified,
		MainFindings:    NotSpecified,
		Limitations:     NotSpecified,
		AbstractSummary: paper.AbstractSummary(degradedSummaryLimit),
		Fallback:        true,
	}
}
