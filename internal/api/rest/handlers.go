package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Leganyst/provider-catalog/internal/service"
)

// crudHandler: одинаковые обработчики для стран, услуг и поставщиков.
type crudHandler[Req, Resp any] struct {
	svc service.CRUD[Req, Resp]
}

func (h crudHandler[Req, Resp]) list(c *gin.Context) {
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	page, err := h.svc.List(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h crudHandler[Req, Resp]) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h crudHandler[Req, Resp]) create(c *gin.Context) {
	var req Req
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h crudHandler[Req, Resp]) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req Req
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h crudHandler[Req, Resp]) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := h.svc.Delete(c.Request.Context(), id)
	respondDeleted(c, deleted, err)
}

func (h crudHandler[Req, Resp]) register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}
