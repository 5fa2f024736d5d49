package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tripmart/models"
	"tripmart/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationService struct {
	feed map[string][]models.Notification
}

func (f *fakeNotificationService) ListForUser(userID string) ([]models.Notification, error) {
	return f.feed[userID], nil
}

func (f *fakeNotificationService) MarkRead(userID, notificationID string) error {
	for _, n := range f.feed[userID] {
		if n.ID == notificationID {
			return nil
		}
	}
	return utils.NewError(utils.KindNotFound, "notification not found")
}

func (f *fakeNotificationService) NotifyContentFlagged(string, string) error       { return nil }
func (f *fakeNotificationService) NotifyStockOut(string, string) error             { return nil }
func (f *fakeNotificationService) NotifyBirthdayPromo(string, string, float64) error { return nil }
func (f *fakeNotificationService) NotifyBookingReminder(string, string) error      { return nil }

func notificationRouter(svc *fakeNotificationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewNotificationHandler(svc)
	router := gin.New()
	authed := router.Group("/", func(c *gin.Context) {
		c.Set("userID", "tourist-1")
	})
	authed.GET("/notifications", h.List)
	authed.PATCH("/notifications/:id/read", h.MarkRead)
	return router
}

func TestNotificationListEnvelope(t *testing.T) {
	svc := &fakeNotificationService{feed: map[string][]models.Notification{
		"tourist-1": {{ID: "n-1", Recipient: "tourist-1", Title: "Birthday promo"}},
	}}
	router := notificationRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body utils.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Empty(t, body.Message)
	assert.NotNil(t, body.Data)
}

func TestNotificationMarkReadUnknownEnvelope(t *testing.T) {
	svc := &fakeNotificationService{feed: map[string][]models.Notification{}}
	router := notificationRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/notifications/missing/read", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	var body utils.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "notification not found", body.Message)
	assert.Nil(t, body.Data)
}
