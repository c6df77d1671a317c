package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/application/service"
	"github.com/veloclub/clubhouse-api/internal/domain/enum"
	"github.com/veloclub/clubhouse-api/internal/domain/repository"
	"github.com/veloclub/clubhouse-api/internal/presentation/http/dto/request"
	"github.com/veloclub/clubhouse-api/internal/presentation/http/dto/response"
	"github.com/veloclub/clubhouse-api/pkg/pagination"
)

// ItemHandler handles cafeteria catalog HTTP requests
type ItemHandler struct {
	inventoryService *service.InventoryService
}

// NewItemHandler creates a new item handler
func NewItemHandler(inventoryService *service.InventoryService) *ItemHandler {
	return &ItemHandler{inventoryService: inventoryService}
}

// List handles listing catalog items
func (h *ItemHandler) List(c *gin.Context) {
	var filter request.ItemFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ItemFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:     filter.Search,
		LowStock:   filter.LowStock,
		ActiveOnly: filter.ActiveOnly,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}

	if filter.Category != "" {
		if category, ok := enum.ParseItemCategory(filter.Category); ok {
			params.Category = &category
		}
	}

	result, err := h.inventoryService.ListItems(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Items retrieved successfully", result)
}

// Get handles retrieving a single item
func (h *ItemHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.inventoryService.GetItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item retrieved successfully", item)
}

// Create handles adding a catalog item
func (h *ItemHandler) Create(c *gin.Context) {
	var req request.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category := enum.ItemCategoryOther
	if req.Category != "" {
		category, _ = enum.ParseItemCategory(req.Category)
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), &service.CreateItemInput{
		Name:           req.Name,
		Category:       category,
		Price:          req.Price,
		Stock:          req.Stock,
		StockThreshold: req.StockThreshold,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item created successfully", item)
}

// Update handles updating a catalog item
func (h *ItemHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateItemInput{
		Name:           req.Name,
		Price:          req.Price,
		StockThreshold: req.StockThreshold,
		Active:         req.Active,
	}
	if req.Category != nil {
		if category, ok := enum.ParseItemCategory(*req.Category); ok {
			input.Category = &category
		}
	}

	item, err := h.inventoryService.UpdateItem(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", item)
}

// Delete handles removing a catalog item
func (h *ItemHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.inventoryService.DeleteItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item deleted successfully", nil)
}

// Restock handles topping up an item's stock
func (h *ItemHandler) Restock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req request.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.inventoryService.Restock(c.Request.Context(), id, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item restocked successfully", item)
}

// LowStock handles listing items at or below their threshold
func (h *ItemHandler) LowStock(c *gin.Context) {
	items, err := h.inventoryService.GetLowStockItems(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock items retrieved successfully", items)
}

// SendLowStockDigest handles mailing the low stock digest to the caller
func (h *ItemHandler) SendLowStockDigest(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	count, err := h.inventoryService.SendLowStockDigest(c.Request.Context(), *userID, GetUserEmail(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock digest processed", gin.H{"items": count})
}
