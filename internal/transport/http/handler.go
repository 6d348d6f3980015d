package http

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/domain"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/queries/compute_dashboard"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/queries/get_product"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/queries/list_channels"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/queries/list_products"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/usecases/archive_product"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/usecases/create_product"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/usecases/update_product"
	"github.com/hayasaka-dev/resale-ledger/internal/pkg/rowfilter"
)

// Handler exposes the record store and dashboard to the UI collaborator.
// It is a thin shim: bind, validate, delegate, map errors.
type Handler struct {
	createProduct  *create_product.Interactor
	updateProduct  *update_product.Interactor
	archiveProduct *archive_product.Interactor
	getProduct     *get_product.Query
	listProducts   *list_products.Query
	dashboard      *compute_dashboard.Query
	channels       *list_channels.Query
	log            *zap.Logger
}

// NewHandler creates the HTTP handler.
func NewHandler(
	createProduct *create_product.Interactor,
	updateProduct *update_product.Interactor,
	archiveProduct *archive_product.Interactor,
	getProduct *get_product.Query,
	listProducts *list_products.Query,
	dashboard *compute_dashboard.Query,
	channels *list_channels.Query,
	log *zap.Logger,
) *Handler {
	return &Handler{
		createProduct:  createProduct,
		updateProduct:  updateProduct,
		archiveProduct: archiveProduct,
		getProduct:     getProduct,
		listProducts:   listProducts,
		dashboard:      dashboard,
		channels:       channels,
		log:            log,
	}
}

// Register binds all routes on the given engine.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	v1.POST("/products", h.handleCreate)
	v1.GET("/products", h.handleList)
	v1.GET("/products/:product_no", h.handleGet)
	v1.PATCH("/products/:product_no", h.handleUpdate)
	v1.POST("/products/:product_no/archive", h.handleArchive)
	v1.GET("/dashboard", h.handleDashboard)
	v1.GET("/channels", h.handleChannels)
}

func (h *Handler) handleCreate(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request payload"})
		return
	}
	if err := checkRequest(&req); err != nil {
		writeError(c, h.log, err)
		return
	}

	purchaseDate, _ := domain.ParseDate(req.PurchaseDate)
	var saleDate domain.Date
	if req.SaleDate != "" {
		saleDate, _ = domain.ParseDate(req.SaleDate)
	}

	product, err := h.createProduct.Execute(c.Request.Context(), &create_product.Request{
		Name:          req.Name,
		StoreName:     req.StoreName,
		PurchaseDate:  purchaseDate,
		PurchasePrice: *req.PurchasePrice,
		SaleStatus:    domain.SaleStatus(req.SaleStatus),
		SaleDate:      saleDate,
		SalePrice:     req.SalePrice,
		SalesChannel:  req.SalesChannel,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(product))
}

func (h *Handler) handleGet(c *gin.Context) {
	product, err := h.getProduct.Execute(c.Request.Context(), &get_product.Request{
		ProductNo: c.Param("product_no"),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

func (h *Handler) handleList(c *gin.Context) {
	req, err := listRequestFromQuery(c)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	seq, err := h.listProducts.Execute(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	resp := ListProductsResponse{Products: []ProductResponse{}}
	for product := range seq {
		resp.Products = append(resp.Products, toProductResponse(product))
	}
	resp.Count = len(resp.Products)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) handleUpdate(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request payload"})
		return
	}
	if err := checkRequest(&req); err != nil {
		writeError(c, h.log, err)
		return
	}

	product, err := h.updateProduct.Execute(c.Request.Context(), &update_product.Request{
		ProductNo:        c.Param("product_no"),
		ExpectedRevision: req.ExpectedRevision,
		Patch:            req.Patch(),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

func (h *Handler) handleArchive(c *gin.Context) {
	var req ArchiveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request payload"})
		return
	}
	if err := checkRequest(&req); err != nil {
		writeError(c, h.log, err)
		return
	}

	product, err := h.archiveProduct.Execute(c.Request.Context(), &archive_product.Request{
		ProductNo:        c.Param("product_no"),
		ExpectedRevision: req.ExpectedRevision,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

func (h *Handler) handleDashboard(c *gin.Context) {
	from, err := requireDateParam(c, "from")
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	to, err := requireDateParam(c, "to")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	view, err := h.dashboard.Execute(c.Request.Context(), &compute_dashboard.Request{
		From: from,
		To:   to,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *Handler) handleChannels(c *gin.Context) {
	channels, err := h.channels.Execute(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ChannelsResponse{Channels: channels})
}

func listRequestFromQuery(c *gin.Context) (*list_products.Request, error) {
	req := &list_products.Request{
		Status:          domain.SaleStatus(c.Query("status")),
		StoreName:       c.Query("store_name"),
		SalesChannel:    c.Query("channel"),
		IncludeArchived: c.Query("include_archived") == "true",
		SortBy:          list_products.SortKey(c.Query("sort_by")),
	}
	if strings.EqualFold(c.Query("sort_dir"), "desc") {
		req.SortDir = rowfilter.Desc
	}

	if req.Status != "" && !req.Status.Valid() {
		return nil, &domain.ValidationError{Violations: []domain.FieldViolation{
			{Field: "status", Message: "must be one of unlisted listed sold"},
		}}
	}
	if !slices.Contains([]list_products.SortKey{
		list_products.SortNone,
		list_products.SortProductNo,
		list_products.SortPurchaseDate,
		list_products.SortSalePrice,
	}, req.SortBy) {
		return nil, &domain.ValidationError{Violations: []domain.FieldViolation{
			{Field: "sort_by", Message: "must be one of product_no purchase_date sale_price"},
		}}
	}

	var err error
	if req.PurchasedFrom, err = optionalDateParam(c, "purchased_from"); err != nil {
		return nil, err
	}
	if req.PurchasedTo, err = optionalDateParam(c, "purchased_to"); err != nil {
		return nil, err
	}
	if req.SoldFrom, err = optionalDateParam(c, "sold_from"); err != nil {
		return nil, err
	}
	if req.SoldTo, err = optionalDateParam(c, "sold_to"); err != nil {
		return nil, err
	}
	return req, nil
}

func optionalDateParam(c *gin.Context, name string) (domain.Date, error) {
	raw := c.Query(name)
	if raw == "" {
		return domain.Date{}, nil
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return domain.Date{}, &domain.ValidationError{Violations: []domain.FieldViolation{
			{Field: name, Message: "must be YYYY-MM-DD"},
		}}
	}
	return d, nil
}

func requireDateParam(c *gin.Context, name string) (domain.Date, error) {
	raw := c.Query(name)
	if raw == "" {
		return domain.Date{}, &domain.ValidationError{Violations: []domain.FieldViolation{
			{Field: name, Message: "is required"},
		}}
	}
	return optionalDateParam(c, name)
}
