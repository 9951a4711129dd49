package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/rangecard/backend/internal/cartridges"
	"github.com/rangecard/backend/internal/models"
)

// ListCartridges returns the whole catalog
func ListCartridges(store cartridges.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := store.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cartridges": list})
	}
}

// GetCartridge returns one catalog entry
func GetCartridge(store cartridges.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := store.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// UpsertCartridge creates or replaces the cartridge named in the path
func UpsertCartridge(store cartridges.Store, db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Brand          string  `json:"brand"`
			Line           string  `json:"line"`
			Caliber        string  `json:"caliber" binding:"required"`
			MuzzleVelocity float64 `json:"muzzle_velocity" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "caliber and muzzle_velocity are required"})
			return
		}

		cart := models.Cartridge{
			ID:             c.Param("id"),
			Brand:          req.Brand,
			Line:           req.Line,
			Caliber:        req.Caliber,
			MuzzleVelocity: req.MuzzleVelocity,
		}
		details := map[string]interface{}{"id": cart.ID, "caliber": cart.Caliber, "muzzle_velocity": cart.MuzzleVelocity}

		if err := cartridges.Validate(cart); err != nil {
			audit(db, c, "upsert_cartridge", details, false)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := store.Upsert(c.Request.Context(), cart); err != nil {
			audit(db, c, "upsert_cartridge", details, false)
			respondError(c, err)
			return
		}

		audit(db, c, "upsert_cartridge", details, true)
		c.JSON(http.StatusOK, gin.H{"ok": true, "cartridge": cart})
	}
}

// DeleteCartridge removes a catalog entry
func DeleteCartridge(store cartridges.Store, db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := store.Delete(c.Request.Context(), id); err != nil {
			audit(db, c, "delete_cartridge", map[string]interface{}{"id": id}, false)
			respondError(c, err)
			return
		}
		audit(db, c, "delete_cartridge", map[string]interface{}{"id": id}, true)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
