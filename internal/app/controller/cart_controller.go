package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/ikkim/grocery-cart/internal/app/service"
	apperrors "github.com/ikkim/grocery-cart/internal/errors"
	"github.com/ikkim/grocery-cart/internal/middleware"
	ws "github.com/ikkim/grocery-cart/internal/websocket"
)

type CartController struct {
	cartService service.CartService
	hub         *ws.Hub
	upgrader    websocket.Upgrader
}

// NewCartController wires the cart endpoints. Websocket upgrades are accepted
// from allowedOrigins, "*" allows any origin.
func NewCartController(cartService service.CartService, hub *ws.Hub, allowedOrigins []string) *CartController {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &CartController{
		cartService: cartService,
		hub:         hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// non-browser clients send no origin
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required,gt=0"`
}

// GetCart returns the cart with its pricing summary
// GET /api/v1/cart?coupon=SAVE10
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	// codes are matched exactly; upper-casing user input happens here
	coupon := strings.ToUpper(strings.TrimSpace(c.Query("coupon")))
	cart := ctrl.cartService.GetCart(coupon)

	log.Info("Cart fetched successfully", map[string]interface{}{
		"count": len(cart.Items),
		"total": cart.Summary.Total.String(),
	})

	c.JSON(http.StatusOK, gin.H{
		"cart_items":    cart.Items,
		"count":         len(cart.Items),
		"history_depth": cart.HistoryDepth,
		"can_undo":      cart.CanUndo,
		"summary":       cart.Summary,
	})
}

// AddToCart adds one unit of a catalog product
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "product_id is required")
		return
	}

	item, err := ctrl.cartService.AddToCart(req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to add to cart", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		apperrors.ParseAndRespond(c, err, "add to cart")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item added to cart",
		"item":    item,
	})
}

// RemoveFromCart removes a line entirely, whatever its quantity
// DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		log.Warn("Invalid cart item ID format", map[string]interface{}{
			"product_id": idStr,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	if err := ctrl.cartService.RemoveFromCart(id); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Item is not in the cart")
			return
		}
		log.Error("Failed to remove from cart", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
	})
}

// UndoLast reverts the most recent cart action, if any
// POST /api/v1/cart/undo
func (ctrl *CartController) UndoLast(c *gin.Context) {
	undone := ctrl.cartService.UndoLast()

	c.JSON(http.StatusOK, gin.H{
		"undone": undone,
	})
}

// CartFeed upgrades to a websocket that receives the cart after every change
// GET /api/v1/cart/ws
func (ctrl *CartController) CartFeed(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade to WebSocket", err)
		return
	}

	cart := ctrl.cartService.GetCart("")
	initial, err := json.Marshal(service.CartEvent{
		Type:         service.CartEventSnapshot,
		Items:        cart.Items,
		HistoryDepth: cart.HistoryDepth,
	})
	if err != nil {
		log.Error("Failed to encode cart snapshot", err)
		conn.Close()
		return
	}

	client := ctrl.hub.Attach(ws.NewConn(conn), initial)

	log.Info("WebSocket connection established", map[string]interface{}{
		"client_id": client.ID,
	})
}
