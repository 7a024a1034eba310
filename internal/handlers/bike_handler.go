package handlers

import (
	"net/http"

	"github.com/bikebay/server/internal/models"
	"github.com/bikebay/server/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func CreateBikeHandler(b *services.BikeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFrom(c)
		if !ok {
			respondUnauthenticated(c)
			return
		}

		var bike models.Bike
		if err := c.ShouldBindJSON(&bike); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := b.CreateBike(c.Request.Context(), actor, &bike)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Bike created successfully"))
	}
}

func ListBikes(b *services.BikeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bikes, err := b.ListAvailableBikes(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(bikes, ""))
	}
}

func GetBikeByID(b *services.BikeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bikeID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid bike ID format"))
			return
		}

		bike, err := b.GetBike(c.Request.Context(), bikeID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(bike, ""))
	}
}

func UpdateBike(b *services.BikeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFrom(c)
		if !ok {
			respondUnauthenticated(c)
			return
		}

		bikeID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid bike ID format"))
			return
		}

		var fields map[string]interface{}
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		updated, err := b.UpdateBike(c.Request.Context(), actor, bikeID, fields)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Bike updated successfully"))
	}
}

func DeleteBike(b *services.BikeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFrom(c)
		if !ok {
			respondUnauthenticated(c)
			return
		}

		bikeID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid bike ID format"))
			return
		}

		if err := b.DeleteBike(c.Request.Context(), actor, bikeID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Bike deleted successfully"))
	}
}

func ListBikesByHoster(b *services.BikeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hosterID, err := uuid.Parse(c.Param("hosterId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid hoster ID format"))
			return
		}

		bikes, err := b.ListBikesByHoster(c.Request.Context(), hosterID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(bikes, ""))
	}
}
