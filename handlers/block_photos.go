package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

const maxBlockPhotos = 3

// HandleBlockPhotoUpload attaches uploaded photos to a service block,
// keeping at most three per block.
func HandleBlockPhotoUpload(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		blockID := e.Request.PathValue("id")

		record, err := app.FindRecordById("service_blocks", blockID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Service block not found")
		}

		files, err := e.FindUploadedFiles("photos")
		if err != nil || len(files) == 0 {
			return ErrorToast(e, http.StatusBadRequest, "No photo uploaded")
		}

		existing := record.GetStringSlice("photos")
		if len(existing)+len(files) > maxBlockPhotos {
			return ErrorToast(e, http.StatusBadRequest, "Cada serviço aceita no máximo 3 fotos")
		}

		record.Set("photos+", files)

		if err := app.Save(record); err != nil {
			log.Printf("block_photos: could not save photos for block %s: %v", blockID, err)
			return ErrorToast(e, http.StatusBadRequest, "Formato inválido. Use JPEG ou PNG até 10MB.")
		}

		SetToast(e, "success", "Foto adicionada")
		e.Response.Header().Set("HX-Refresh", "true")
		return e.String(http.StatusOK, "")
	}
}

// HandleBlockPhotoDelete removes one photo from a block by filename.
func HandleBlockPhotoDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		blockID := e.Request.PathValue("id")
		fileName := e.Request.PathValue("name")

		record, err := app.FindRecordById("service_blocks", blockID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Service block not found")
		}

		record.Set("photos-", []string{fileName})

		if err := app.Save(record); err != nil {
			log.Printf("block_photos: could not remove photo %s from block %s: %v", fileName, blockID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Foto removida")
		e.Response.Header().Set("HX-Refresh", "true")
		return e.String(http.StatusOK, "")
	}
}
