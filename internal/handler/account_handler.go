package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contentfactory/panel-api/internal/models"
	appErrors "github.com/contentfactory/panel-api/pkg/errors"
	"github.com/contentfactory/panel-api/pkg/response"
)

type accountClient interface {
	ListSocialAccounts(ctx context.Context) ([]models.SocialAccount, error)
	CreateSocialAccount(ctx context.Context, input models.SocialAccountInput) (*models.SocialAccount, error)
	DeleteSocialAccount(ctx context.Context, id int64) error
}

// AccountHandler manages social-account endpoints.
type AccountHandler struct {
	client accountClient
}

// NewAccountHandler constructs handler.
func NewAccountHandler(client accountClient) *AccountHandler {
	return &AccountHandler{client: client}
}

// List godoc
// @Summary List social accounts
// @Tags Accounts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /social-accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.client.ListSocialAccounts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, accounts)
}

// Create godoc
// @Summary Attach a social account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param payload body models.SocialAccountInput true "Account"
// @Success 201 {object} response.Envelope
// @Router /social-accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	var input models.SocialAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid account payload"))
		return
	}
	account, err := h.client.CreateSocialAccount(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, account)
}

// Delete godoc
// @Summary Detach a social account
// @Tags Accounts
// @Param id path int true "Account ID"
// @Success 204
// @Router /social-accounts/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.client.DeleteSocialAccount(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
