package enforce

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	evaluatingHeaderTemplateConstant    = "Evaluating: \"%s\"\n"
	lineIssueTemplateConstant           = "    Line %03d: %s\n"
	executePrivilegesTemplateConstant   = "File: \"%s\" has execute privileges.\n"
	decodeFailureTemplateConstant       = "File: \"%s\" was not a valid utf-8 file.\n"
	badLineEndingTemplateConstant       = "File: \"%s\" has bad line endings of \"%s\".\n"
	scanRootAccessErrorTemplateConstant = "unable to access scan root: %w"
	scanRootNotDirectoryTemplate        = "scan root %s is not a directory"
	executePermissionBitsConstant       = 0o111
)

// Service walks a directory tree and aggregates hygiene issues into a Verdict.
type Service struct {
	outputWriter io.Writer
}

// NewService constructs a Service streaming diagnostics to the provided writer.
func NewService(outputWriter io.Writer) *Service {
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	return &Service{outputWriter: outputWriter}
}

// Scan traverses the configured root and applies the requested checks to
// every matching file. Scan-level issues (tabs, trailing whitespace, line
// endings, execute bits, decode failures) never abort the walk; the verdict
// is clean iff zero issues were emitted.
//
// The exclusion set is evaluated against the scan root once, not against
// each visited file: an exclusion equal to the root or one of its ancestors
// therefore suppresses the entire scan. Per-file exclusion would be the
// expected contract, but existing configurations depend on this scope, so it
// is kept.
func (service *Service) Scan(options ScanOptions) (Verdict, error) {
	rootInfo, statError := os.Stat(options.Root)
	if statError != nil {
		return Verdict{}, fmt.Errorf(scanRootAccessErrorTemplateConstant, statError)
	}
	if !rootInfo.IsDir() {
		return Verdict{}, fmt.Errorf(scanRootNotDirectoryTemplate, options.Root)
	}

	extensionSet := make(map[string]struct{}, len(options.Extensions))
	for _, extension := range options.Extensions {
		extensionSet[extension] = struct{}{}
	}

	scanSuppressed := rootMatchesExclusion(options.Root, options.ExcludePaths)

	var issues []LineIssue
	walkError := filepath.WalkDir(options.Root, func(filePath string, directoryEntry fs.DirEntry, visitError error) error {
		if visitError != nil {
			return visitError
		}
		if !directoryEntry.Type().IsRegular() {
			return nil
		}
		if !options.AllExtensions {
			if _, matches := extensionSet[filepath.Ext(filePath)]; !matches {
				return nil
			}
		}
		if scanSuppressed {
			return nil
		}

		fileIssues, fileError := service.evaluateFile(filePath, directoryEntry, options)
		if fileError != nil {
			return fileError
		}
		issues = append(issues, fileIssues...)
		return nil
	})
	if walkError != nil {
		return Verdict{}, walkError
	}

	return Verdict{Clean: len(issues) == 0, Issues: issues}, nil
}

func (service *Service) evaluateFile(filePath string, directoryEntry fs.DirEntry, options ScanOptions) ([]LineIssue, error) {
	var issues []LineIssue
	alreadyListed := false

	listFile := func() {
		if alreadyListed {
			return
		}
		fmt.Fprintf(service.outputWriter, evaluatingHeaderTemplateConstant, filePath)
		alreadyListed = true
	}

	if options.ListAll {
		listFile()
	}

	if options.CheckExecute {
		fileInfo, infoError := directoryEntry.Info()
		if infoError == nil && fileInfo.Mode().Perm()&executePermissionBitsConstant != 0 {
			fmt.Fprintf(service.outputWriter, executePrivilegesTemplateConstant, filePath)
			issues = append(issues, LineIssue{Kind: IssueKindExecutableBit, FilePath: filePath})
		}
	}

	contentBytes, readError := os.ReadFile(filePath)
	if readError != nil {
		return nil, readError
	}
	if !utf8.Valid(contentBytes) {
		fmt.Fprintf(service.outputWriter, decodeFailureTemplateConstant, filePath)
		issues = append(issues, LineIssue{Kind: IssueKindDecodeError, FilePath: filePath})
		return issues, nil
	}

	rawLines := SplitRawLines(string(contentBytes))
	badLineEndingReported := false
	for lineIndex, rawLine := range rawLines {
		logicalContent, _ := SplitLineTerminator(rawLine)
		lineNumber := lineIndex + 1

		if options.CheckTabs && ContainsTab(rawLine) {
			listFile()
			fmt.Fprintf(service.outputWriter, lineIssueTemplateConstant, lineNumber, strconv.Quote(rawLine))
			issues = append(issues, LineIssue{Kind: IssueKindTab, FilePath: filePath, LineNumber: lineNumber, RawText: rawLine})
		} else if options.CheckTrailing && HasTrailingSpace(logicalContent) {
			listFile()
			fmt.Fprintf(service.outputWriter, lineIssueTemplateConstant, lineNumber, strconv.Quote(rawLine))
			issues = append(issues, LineIssue{Kind: IssueKindTrailingWhitespace, FilePath: filePath, LineNumber: lineNumber, RawText: rawLine})
		}

		isLastLine := lineIndex == len(rawLines)-1
		if len(options.LineEnding) > 0 && !isLastLine && !strings.HasSuffix(rawLine, options.LineEnding) && !badLineEndingReported {
			actualTerminator := rawLine[len(logicalContent):]
			fmt.Fprintf(service.outputWriter, badLineEndingTemplateConstant, filePath, escapeTerminator(actualTerminator))
			issues = append(issues, LineIssue{Kind: IssueKindBadLineEnding, FilePath: filePath, LineNumber: lineNumber, RawText: actualTerminator})
			badLineEndingReported = true
		}
	}

	return issues, nil
}

// rootMatchesExclusion reports whether any exclusion equals the scan root or
// is one of its ancestors. See the Scan documentation for the scope quirk
// this preserves.
func rootMatchesExclusion(scanRoot string, excludePaths []string) bool {
	cleanedRoot := filepath.Clean(scanRoot)
	for _, excludePath := range excludePaths {
		cleanedExclusion := filepath.Clean(excludePath)
		if cleanedExclusion == cleanedRoot {
			return true
		}
		if strings.HasPrefix(cleanedRoot+string(os.PathSeparator), cleanedExclusion+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}

// escapeTerminator renders a line terminator with visible escapes, e.g. "\n"
// becomes the two characters backslash and n.
func escapeTerminator(terminator string) string {
	quotedTerminator := strconv.Quote(terminator)
	return quotedTerminator[1 : len(quotedTerminator)-1]
}
