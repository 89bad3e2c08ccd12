package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/application"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/apperr"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/entity"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/response"
)

type ProductHandler struct {
	Products *application.ProductService
}

func NewProductHandler(products *application.ProductService) *ProductHandler {
	return &ProductHandler{Products: products}
}

type createProductRequest struct {
	Name        string   `json:"nombre" binding:"required,max=200"`
	Description string   `json:"descripcion" binding:"required"`
	Price       *float64 `json:"precio" binding:"required,gte=0"`
	Stock       *int     `json:"stock" binding:"required,gte=0"`
	Category    string   `json:"categoria" binding:"required,max=100"`
	Active      *bool    `json:"activo"`
}

type updateProductRequest struct {
	Name        *string  `json:"nombre" binding:"omitempty,max=200"`
	Description *string  `json:"descripcion"`
	Price       *float64 `json:"precio" binding:"omitempty,gte=0"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
	Category    *string  `json:"categoria" binding:"omitempty,max=100"`
	Active      *bool    `json:"activo"`
}

// Create POST /api/productos
func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	p, err := h.Products.Create(c.Request.Context(), entity.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Stock:       *req.Stock,
		Category:    req.Category,
		Active:      req.Active,
	})
	if err != nil {
		fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusCreated, p, "product created")
	c.JSON(resp.Status, resp)
}

// List GET /api/productos?activo=&categoria=
func (h *ProductHandler) List(c *gin.Context) {
	var f entity.ProductFilter
	if raw, ok := c.GetQuery("activo"); ok && raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			fail(c, apperr.Validation("activo must be true or false"))
			return
		}
		f.Active = &v
	}
	f.Category = strings.TrimSpace(c.Query("categoria"))

	list, err := h.Products.List(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	resp := response.List[*entity.Product](c, list, "")
	c.JSON(resp.Status, resp)
}

// Get GET /api/productos/:id
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, p, "")
	c.JSON(resp.Status, resp)
}

// Update PUT /api/productos/:id
func (h *ProductHandler) Update(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	p, err := h.Products.Update(c.Request.Context(), c.Param("id"), entity.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		Active:      req.Active,
	})
	if err != nil {
		fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, p, "product updated")
	c.JSON(resp.Status, resp)
}

// Delete DELETE /api/productos/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	p, err := h.Products.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, p, "product deleted")
	c.JSON(resp.Status, resp)
}
