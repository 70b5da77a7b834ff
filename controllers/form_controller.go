package controllers

import (
	"net/http"
	"strings"

	"github.com/freshcheck/api-go/models"
	"github.com/freshcheck/api-go/stores"
	"github.com/freshcheck/api-go/utils"
	"github.com/gin-gonic/gin"
)

type FormController struct {
	Forms stores.FormStore
}

type CreateFormRequest struct {
	Title     string            `json:"title" binding:"required"`
	Questions []models.Question `json:"questions"`
}

type UpdateFormRequest struct {
	Title     *string            `json:"title"`
	Questions *[]models.Question `json:"questions"`
	IsActive  *bool              `json:"isActive"`
}

func NewFormController(forms stores.FormStore) *FormController {
	return &FormController{Forms: forms}
}

// ListForms returns active forms. Admins may pass includeInactive=true to see
// retired ones too.
func (fc *FormController) ListForms(c *gin.Context) {
	user := utils.GetUser(c)
	includeInactive := utils.QueryBool(c, "includeInactive") && user.HasRole(models.RoleAdmin)

	forms, err := fc.Forms.List(c.Request.Context(), includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, forms)
}

func (fc *FormController) GetForm(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		badRequest(c, "Invalid form id")
		return
	}

	form, err := fc.Forms.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func (fc *FormController) CreateForm(c *gin.Context) {
	var req CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Title is required")
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		badRequest(c, "Title is required")
		return
	}
	if err := models.ValidateQuestions(req.Questions); err != nil {
		badRequest(c, err.Error())
		return
	}

	form := models.InspectionForm{
		Title:       title,
		Version:     1,
		IsActive:    true,
		CreatedByID: utils.GetUser(c).UserID,
	}
	if err := form.SetQuestions(req.Questions); err != nil {
		badRequest(c, "Questions could not be encoded")
		return
	}

	if err := fc.Forms.Create(c.Request.Context(), &form); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, form)
}

// UpdateForm replaces the title and/or the whole question set. Replacing the
// questions bumps the form version.
func (fc *FormController) UpdateForm(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		badRequest(c, "Invalid form id")
		return
	}

	var req UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	form, err := fc.Forms.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			badRequest(c, "Title cannot be empty")
			return
		}
		form.Title = title
	}
	if req.Questions != nil {
		if err := models.ValidateQuestions(*req.Questions); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := form.SetQuestions(*req.Questions); err != nil {
			badRequest(c, "Questions could not be encoded")
			return
		}
		form.Version++
	}
	if req.IsActive != nil {
		form.IsActive = *req.IsActive
	}

	if err := fc.Forms.Update(ctx, form); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// DeleteForm retires the form; reports filed against it stay readable.
func (fc *FormController) DeleteForm(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		badRequest(c, "Invalid form id")
		return
	}

	if err := fc.Forms.Deactivate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Form deactivated successfully")
}
