package controllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/freshcheck/api-go/apperrors"
	"github.com/freshcheck/api-go/models"
	"github.com/freshcheck/api-go/services"
	"github.com/freshcheck/api-go/stores"
	"github.com/freshcheck/api-go/types"
	"github.com/freshcheck/api-go/utils"
	"github.com/gin-gonic/gin"
)

// UploadController manages evidence photos of draft reports. Photos go straight
// from the client to the bucket through presigned URLs.
type UploadController struct {
	Reports stores.ReportStore
	Storage services.EvidenceStorage
	// ExpiresIn is the presigned URL lifetime in seconds, echoed to clients.
	ExpiresIn int
}

type PresignedURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

type ConfirmUploadRequest struct {
	Key string `json:"key" binding:"required"`
}

var errStorageDisabled = apperrors.New(apperrors.KindUnavailable, "Evidence storage is not configured")

func NewUploadController(reports stores.ReportStore, storage services.EvidenceStorage, expiresIn int) *UploadController {
	return &UploadController{Reports: reports, Storage: storage, ExpiresIn: expiresIn}
}

func (uc *UploadController) GetPresignedURL(c *gin.Context) {
	report, ok := uc.ownDraft(c)
	if !ok {
		return
	}

	var req PresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "File name, content type and size are required")
		return
	}
	if !services.ValidEvidence(req.ContentType, req.FileSize) {
		badRequest(c, "Only images up to 10MB are accepted")
		return
	}

	key := services.EvidenceKey(report.ID, req.FileName)
	uploadURL, err := uc.Storage.PresignUpload(c.Request.Context(), key, req.ContentType)
	if err != nil {
		respondError(c, apperrors.Wrap(apperrors.KindInternal, "Failed to create upload URL", err))
		return
	}

	c.JSON(http.StatusOK, PresignedURLResponse{
		UploadURL: uploadURL,
		FileURL:   uc.Storage.PublicURL(key),
		Key:       key,
		ExpiresIn: uc.ExpiresIn,
	})
}

// ConfirmUpload attaches an uploaded object to the report once it is in the bucket.
func (uc *UploadController) ConfirmUpload(c *gin.Context) {
	report, ok := uc.ownDraft(c)
	if !ok {
		return
	}

	var req ConfirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Key is required")
		return
	}
	if !services.EvidenceKeyBelongs(req.Key, report.ID) {
		badRequest(c, "Key does not belong to this report")
		return
	}

	ctx := c.Request.Context()
	exists, err := uc.Storage.Exists(ctx, req.Key)
	if err != nil {
		respondError(c, apperrors.Internal(err))
		return
	}
	if !exists {
		badRequest(c, "File has not been uploaded")
		return
	}

	updated, err := uc.Reports.AddAttachment(ctx, report.ID, report.InspectorID, req.Key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (uc *UploadController) DeleteFile(c *gin.Context) {
	report, ok := uc.ownDraft(c)
	if !ok {
		return
	}

	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" || !services.EvidenceKeyBelongs(key, report.ID) {
		badRequest(c, "Invalid file key")
		return
	}

	ctx := c.Request.Context()
	updated, err := uc.Reports.RemoveAttachment(ctx, report.ID, report.InspectorID, key)
	if err != nil {
		respondError(c, err)
		return
	}
	// The report no longer references the object; a leftover is harmless.
	if err := uc.Storage.Delete(ctx, key); err != nil {
		log.Printf("Failed to delete evidence %s: %v", key, err)
	}
	c.JSON(http.StatusOK, updated)
}

// ownDraft loads the report named in the path and checks the caller may edit it.
func (uc *UploadController) ownDraft(c *gin.Context) (*models.InspectionReport, bool) {
	if uc.Storage == nil {
		respondError(c, errStorageDisabled)
		return nil, false
	}

	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		badRequest(c, "Invalid report id")
		return nil, false
	}

	report, err := uc.Reports.Get(c.Request.Context(), id, types.ReportScope{})
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if err := services.CheckDraftEdit(utils.GetUser(c).UserID, report); err != nil {
		respondError(c, err)
		return nil, false
	}
	return report, true
}
