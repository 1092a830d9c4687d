package domain

// Summary is the structured output of the summarizer. For long documents
// it is the reduction of per-chunk partial summaries; the partials are
// discarded after reduction.
type Summary struct {
	Summary     string   `json:"summary"`
	Parties     []string `json:"parties"`
	Duration    *string  `json:"duration"`
	Amounts     []string `json:"amounts"`
	RiskClauses []string `json:"risk_clauses"`
}

// StageFailure records a soft-failed pipeline stage so callers can log
// what degraded without inspecting error chains.
type StageFailure struct {
	Stage  string `json:"stage"`
	Reason string `json:"reason"`
}

// DocumentResult is the orchestrator's assembled output. Nil members mean
// the stage failed softly or was never reached; FailedStages says which.
type DocumentResult struct {
	Classification *Classification   `json:"classification"`
	Extraction     *ExtractionResult `json:"extraction"`
	Summary        *Summary          `json:"summary"`
	FailedStages   []StageFailure    `json:"failed_stages,omitempty"`
}
