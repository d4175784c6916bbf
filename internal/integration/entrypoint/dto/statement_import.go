package dto

import (
	statementimport "github.com/finance-tracker/ledger/internal/application/usecase/statement_import"
)

// ImportRowRequest is one normalized statement line.
type ImportRowRequest struct {
	EffectiveDate  string  `json:"effective_date"`
	AccrualDate    string  `json:"accrual_date,omitempty"`
	Description    string  `json:"description"`
	DocumentNumber string  `json:"document_number"`
	Amount         string  `json:"amount"`
	CategoryID     *string `json:"category_id,omitempty"`
}

// ImportRequest represents the request body for previewing or confirming an import.
type ImportRequest struct {
	Rows []ImportRowRequest `json:"rows"`
}

// ImportCandidateResponse is a row that a confirmation would import.
type ImportCandidateResponse struct {
	Row                 int     `json:"row"`
	AccrualDate         string  `json:"accrual_date"`
	EffectiveDate       string  `json:"effective_date"`
	Description         string  `json:"description"`
	DocumentNumber      string  `json:"document_number"`
	Amount              string  `json:"amount"`
	Type                string  `json:"type"`
	Fingerprint         string  `json:"fingerprint"`
	AlreadyImported     bool    `json:"already_imported"`
	SuggestedCategoryID *string `json:"suggested_category_id"`
}

// ImportOldRowResponse is a row dated before the account's initial balance date.
type ImportOldRowResponse struct {
	Row           int    `json:"row"`
	EffectiveDate string `json:"effective_date"`
	Description   string `json:"description"`
	Amount        string `json:"amount"`
}

// PreviewImportResponse represents the import preview.
type PreviewImportResponse struct {
	Candidates []ImportCandidateResponse `json:"candidates"`
	OldRows    []ImportOldRowResponse    `json:"old_rows"`
	Warnings   []string                  `json:"warnings"`
}

// ConfirmImportResponse summarizes an import.
type ConfirmImportResponse struct {
	Imported          int      `json:"imported"`
	SkippedDuplicates int      `json:"skipped_duplicates"`
	SkippedOld        int      `json:"skipped_old"`
	Warnings          []string `json:"warnings"`
}

// ToPreviewImportResponse converts the preview output to its DTO.
func ToPreviewImportResponse(output *statementimport.PreviewImportOutput) PreviewImportResponse {
	response := PreviewImportResponse{
		Candidates: make([]ImportCandidateResponse, 0, len(output.Candidates)),
		OldRows:    make([]ImportOldRowResponse, 0, len(output.OldRows)),
		Warnings:   nonNil(output.Warnings),
	}
	for _, c := range output.Candidates {
		response.Candidates = append(response.Candidates, ImportCandidateResponse{
			Row:                 c.Row,
			AccrualDate:         formatDate(c.AccrualDate),
			EffectiveDate:       formatDate(c.EffectiveDate),
			Description:         c.Description,
			DocumentNumber:      c.DocumentNumber,
			Amount:              c.Amount.StringFixed(2),
			Type:                string(c.Type),
			Fingerprint:         c.Fingerprint,
			AlreadyImported:     c.AlreadyImported,
			SuggestedCategoryID: formatOptionalID(c.CategoryID),
		})
	}
	for _, old := range output.OldRows {
		response.OldRows = append(response.OldRows, ImportOldRowResponse{
			Row:           old.Row,
			EffectiveDate: formatDate(old.EffectiveDate),
			Description:   old.Description,
			Amount:        old.Amount.StringFixed(2),
		})
	}
	return response
}

// ToConfirmImportResponse converts the confirmation output to its DTO.
func ToConfirmImportResponse(output *statementimport.ConfirmImportOutput) ConfirmImportResponse {
	return ConfirmImportResponse{
		Imported:          output.Imported,
		SkippedDuplicates: output.SkippedDuplicates,
		SkippedOld:        output.SkippedOld,
		Warnings:          nonNil(output.Warnings),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
