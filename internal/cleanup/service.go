package cleanup

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	byteCodeFileExtensionConstant    = ".pyc"
	removalMessageTemplateConstant   = "Removing \"%s\"\n"
	folderListErrorTemplateConstant  = "unable to list folder %s: %w"
	fileRemovalErrorTemplateConstant = "unable to remove %s: %w"
)

// DeletionOptions captures the configurable parameters for one cleanup run.
type DeletionOptions struct {
	Folder        string
	Recursive     bool
	PrintProgress bool
}

// Service deletes byte-code files, optionally reporting each removal to its writer.
type Service struct {
	outputWriter io.Writer
}

// NewService constructs a Service reporting removals to the provided writer.
func NewService(outputWriter io.Writer) *Service {
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	return &Service{outputWriter: outputWriter}
}

// Delete removes every byte-code file under the folder, direct children only
// unless recursive. Files vanishing between discovery and removal are
// tolerated.
func (service *Service) Delete(options DeletionOptions) error {
	byteCodeFilePaths, listError := listByteCodeFiles(options.Folder, options.Recursive)
	if listError != nil {
		return listError
	}

	for _, byteCodeFilePath := range byteCodeFilePaths {
		if options.PrintProgress {
			fmt.Fprintf(service.outputWriter, removalMessageTemplateConstant, byteCodeFilePath)
		}
		removalError := os.Remove(byteCodeFilePath)
		if removalError != nil && !errors.Is(removalError, fs.ErrNotExist) {
			return fmt.Errorf(fileRemovalErrorTemplateConstant, byteCodeFilePath, removalError)
		}
	}

	return nil
}

func listByteCodeFiles(folder string, recursive bool) ([]string, error) {
	byteCodeFilePaths := []string{}

	if recursive {
		walkError := filepath.WalkDir(folder, func(candidatePath string, directoryEntry fs.DirEntry, visitError error) error {
			if visitError != nil {
				return visitError
			}
			if directoryEntry.IsDir() {
				return nil
			}
			if strings.HasSuffix(directoryEntry.Name(), byteCodeFileExtensionConstant) {
				byteCodeFilePaths = append(byteCodeFilePaths, candidatePath)
			}
			return nil
		})
		if walkError != nil {
			return nil, fmt.Errorf(folderListErrorTemplateConstant, folder, walkError)
		}
	} else {
		directoryEntries, listError := os.ReadDir(folder)
		if listError != nil {
			return nil, fmt.Errorf(folderListErrorTemplateConstant, folder, listError)
		}
		for _, directoryEntry := range directoryEntries {
			if directoryEntry.IsDir() {
				continue
			}
			if strings.HasSuffix(directoryEntry.Name(), byteCodeFileExtensionConstant) {
				byteCodeFilePaths = append(byteCodeFilePaths, filepath.Join(folder, directoryEntry.Name()))
			}
		}
	}

	return byteCodeFilePaths, nil
}
