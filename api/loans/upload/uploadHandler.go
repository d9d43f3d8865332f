package upload

import (
	"errors"
	"io"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"LoanPulse/api"
	"LoanPulse/api/constants"
	"LoanPulse/internal/config"
	"LoanPulse/internal/ingestion"
	"LoanPulse/internal/store"
)

// UploadLoanFile ingests one loan-servicing file posted as multipart field
// "loanFile". The whole file is buffered; format and record type are detected
// from content, never from the filename.
func UploadLoanFile(pgxPool *pgxpool.Pool) http.HandlerFunc {
	pipeline := ingestion.NewPipeline(store.NewPGStore(pgxPool))
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			api.RespondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
			return
		}
		if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrFailedToParseMultipartForm)
			return
		}
		file, header, err := r.FormFile(constants.UploadFieldName)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrNoFileUploaded)
			return
		}
		defer file.Close()
		fileBytes, err := io.ReadAll(file)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrUploadReadFailed)
			return
		}

		result, err := pipeline.Ingest(r.Context(), fileBytes, header.Filename)
		if err != nil {
			switch {
			case errors.Is(err, ingestion.ErrNoData):
				api.RespondWithError(w, http.StatusBadRequest, constants.ErrNoDataInFile)
			case errors.Is(err, ingestion.ErrUnknownFileType):
				api.RespondWithError(w, http.StatusBadRequest, constants.ErrUnknownFileTypeMsg)
			default:
				api.LogError("upload %s: %v", header.Filename, err)
				api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToProcessFile)
			}
			return
		}

		api.RespondWithJSON(w, result)
	}
}
