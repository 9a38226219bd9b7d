package controllers

import (
	"errors"
	"io"
	"net/http"

	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/repositories"
	"github.com/hassanmehmood/medicart/app/services"
	"github.com/hassanmehmood/medicart/pkg/bind"
	"github.com/hassanmehmood/medicart/pkg/logger"
	"github.com/hassanmehmood/medicart/pkg/response"
)

type CatalogController struct {
	service *services.CatalogService
}

func NewCatalogController(service *services.CatalogService) *CatalogController {
	return &CatalogController{service: service}
}

func (c *CatalogController) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.service.Categories()
	if err != nil {
		logger.WithCtx(r.Context()).Error("list categories", "error", err)
		response.ServerError(w)
		return
	}
	response.Success(w, categories)
}

func (c *CatalogController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in services.CategoryInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.service.CreateCategory(in)
	if err != nil {
		logger.WithCtx(r.Context()).Error("create category", "error", err)
		response.ServerError(w)
		return
	}
	response.Created(w, "Category created", category)
}

func (c *CatalogController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if id == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	var in services.CategoryInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.service.UpdateCategory(id, in)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Category not found")
			return
		}
		logger.WithCtx(r.Context()).Error("update category", "error", err)
		response.ServerError(w)
		return
	}
	response.Message(w, "Category updated", category)
}

func (c *CatalogController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if id == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	if err := c.service.DeleteCategory(id); err != nil {
		logger.WithCtx(r.Context()).Error("delete category", "error", err)
		response.ServerError(w)
		return
	}
	response.Message(w, "Category deleted", nil)
}

func (c *CatalogController) Medicines(w http.ResponseWriter, r *http.Request) {
	filter := repositories.Filter{
		Search:     r.URL.Query().Get("search"),
		CategoryID: uint(queryInt(r, "category", 0)),
	}

	medicines, pagination, err := c.service.Medicines(filter, queryInt(r, "page", 1), queryInt(r, "limit", 20))
	if err != nil {
		logger.WithCtx(r.Context()).Error("list medicines", "error", err)
		response.ServerError(w)
		return
	}
	response.Paginated(w, medicines, pagination)
}

func (c *CatalogController) Medicine(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if id == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid medicine id")
		return
	}

	medicine, err := c.service.Medicine(id)
	if err != nil {
		response.NotFound(w, "Medicine not found")
		return
	}
	response.Success(w, medicine)
}

func (c *CatalogController) CreateMedicine(w http.ResponseWriter, r *http.Request) {
	var in services.MedicineInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	medicine, err := c.service.CreateMedicine(in)
	if err != nil {
		if errors.Is(err, services.ErrStockBelowZero) {
			response.Error(w, http.StatusBadRequest, "Stock cannot be negative")
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(w, http.StatusBadRequest, "Unknown category")
			return
		}
		logger.WithCtx(r.Context()).Error("create medicine", "error", err)
		response.ServerError(w)
		return
	}
	response.Created(w, "Medicine created", medicine)
}

func (c *CatalogController) UpdateMedicine(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if id == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid medicine id")
		return
	}

	var in services.MedicineInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	medicine, err := c.service.UpdateMedicine(id, in)
	if err != nil {
		if errors.Is(err, services.ErrStockBelowZero) {
			response.Error(w, http.StatusBadRequest, "Stock cannot be negative")
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Medicine not found")
			return
		}
		logger.WithCtx(r.Context()).Error("update medicine", "error", err)
		response.ServerError(w)
		return
	}
	response.Message(w, "Medicine updated", medicine)
}

func (c *CatalogController) DeleteMedicine(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if id == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid medicine id")
		return
	}

	if err := c.service.DeleteMedicine(id); err != nil {
		logger.WithCtx(r.Context()).Error("delete medicine", "error", err)
		response.ServerError(w)
		return
	}
	response.Message(w, "Medicine deleted", nil)
}

// UploadImage accepts a multipart "image" file and stores it on the
// configured disk.
func (c *CatalogController) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if id == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid medicine id")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Unreadable image file")
		return
	}

	medicine, err := c.service.AttachImage(id, header.Filename, data)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Medicine not found")
			return
		}
		logger.WithCtx(r.Context()).Error("upload image", "error", err)
		response.ServerError(w)
		return
	}
	response.Message(w, "Image uploaded", medicine)
}
