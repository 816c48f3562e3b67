package common

import (
	"context"

	"resumint/internal/errors"
)

// AnalysisFunc is a generic function signature for a pipeline operation that
// consumes raw resume bytes.
type AnalysisFunc[Output any] func(context.Context, []byte) (Output, error)

// LogDetailsFunc defines how to log the start of an operation.
type LogDetailsFunc func(pdfPath string, cfg CommandConfig)

// RunAnalysisCommand encapsulates the common logic for PDF-based CLI commands:
// validate and read the resume, run the pipeline, format and write the result.
func RunAnalysisCommand[Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	pdfPath string,
	analyze AnalysisFunc[Output],
	logDetails LogDetailsFunc,
) error {
	fileProcessor := NewFileProcessor(logger)
	outputHandler := NewOutputHandler(logger)

	pdfContent, err := fileProcessor.ValidateAndReadPDF(pdfPath)
	if err != nil {
		return err
	}

	logDetails(pdfPath, cmdConfig)

	result, err := analyze(ctx, pdfContent)
	if err != nil {
		return err
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}
