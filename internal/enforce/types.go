package enforce

// IssueKind enumerates the problem categories the scanner can detect.
type IssueKind string

// Issue categories reported during a scan.
const (
	IssueKindTab                IssueKind = "tab"
	IssueKindTrailingWhitespace IssueKind = "trailing-whitespace"
	IssueKindBadLineEnding      IssueKind = "bad-line-ending"
	IssueKindExecutableBit      IssueKind = "executable-bit"
	IssueKindDecodeError        IssueKind = "decode-error"
)

// LineIssue describes one detected problem. LineNumber is 1-based and zero
// for file-level issues (executable bit, decode failures, line endings).
type LineIssue struct {
	Kind       IssueKind
	FilePath   string
	LineNumber int
	RawText    string
}

// Verdict aggregates one full scan: clean iff zero issues were emitted.
type Verdict struct {
	Clean  bool
	Issues []LineIssue
}

// ScanOptions captures the configurable parameters for one scan invocation.
type ScanOptions struct {
	Root          string
	Extensions    []string
	AllExtensions bool
	ExcludePaths  []string
	CheckTabs     bool
	CheckTrailing bool
	LineEnding    string
	CheckExecute  bool
	ListAll       bool
}
