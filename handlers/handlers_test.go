package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"wishbox/models"
	"wishbox/services/newsletter"
	"wishbox/services/notify"
	"wishbox/services/otp"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOTPService struct {
	requestErr error
	verifyErr  error
}

func (s *stubOTPService) RequestCode(_ context.Context, _, _, _ string) error { return s.requestErr }
func (s *stubOTPService) VerifyCode(_ context.Context, _, _, _ string) error  { return s.verifyErr }

type stubNewsletterService struct {
	already bool
	err     error
}

func (s *stubNewsletterService) Subscribe(_ context.Context, _ string) (bool, error) {
	return s.already, s.err
}

type stubNotifyService struct {
	result notify.Result
	err    error
}

func (s *stubNotifyService) NotifyPriceDrop(_ context.Context, _ models.PriceDrop) (notify.Result, error) {
	return s.result, s.err
}

type stubStorageService struct {
	result *models.UploadResult
	err    error
}

func (s *stubStorageService) UploadProfileImage(_ context.Context, _ string, _ io.Reader) (*models.UploadResult, error) {
	return s.result, s.err
}

func performJSON(t *testing.T, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.POST("/x", handler)
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestSendOTPRequiresEmail(t *testing.T) {
	h := NewOTPHandler(&stubOTPService{})
	w := performJSON(t, h.SendOTPHandler, `{"fullName":"Ada"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])
}

func TestSendOTPSuccessEnvelope(t *testing.T) {
	h := NewOTPHandler(&stubOTPService{})
	w := performJSON(t, h.SendOTPHandler, `{"email":"a@example.com"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["message"], "a@example.com")
}

func TestVerifyOTPStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", otp.ErrNotFound, http.StatusNotFound},
		{"expired", otp.ErrExpired, http.StatusBadRequest},
		{"exhausted", otp.ErrAttemptsExhausted, http.StatusBadRequest},
		{"invalid code", otp.InvalidCodeError{Remaining: 3}, http.StatusBadRequest},
		{"unavailable", otp.ErrServiceUnavailable, http.StatusInternalServerError},
		{"generic", otp.ErrVerificationFailed, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewOTPHandler(&stubOTPService{verifyErr: tc.err})
			w := performJSON(t, h.VerifyOTPHandler, `{"email":"a@example.com","otp":"123456"}`)
			assert.Equal(t, tc.code, w.Code)
			assert.Equal(t, false, decode(t, w)["success"])
		})
	}
}

func TestVerifyOTPRequiresEmailAndCode(t *testing.T) {
	h := NewOTPHandler(&stubOTPService{})
	for _, body := range []string{`{}`, `{"email":"a@example.com"}`, `{"otp":"123456"}`} {
		w := performJSON(t, h.VerifyOTPHandler, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestSubscribeInvalidFormat(t *testing.T) {
	h := NewNewsletterHandler(&stubNewsletterService{err: newsletter.ErrInvalidEmail})
	w := performJSON(t, h.SubscribeHandler, `{"email":"not-an-email"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])
}

func TestSubscribeAlreadySubscribed(t *testing.T) {
	h := NewNewsletterHandler(&stubNewsletterService{already: true})
	w := performJSON(t, h.SubscribeHandler, `{"email":"a@example.com"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["message"], "already subscribed")
}

func TestNotifyPriceDropValidation(t *testing.T) {
	h := NewNotifyHandler(&stubNotifyService{})
	for _, body := range []string{
		`{}`,
		`{"productId":"p1","productName":"X","oldPrice":100}`,
		`{"productId":"p1","oldPrice":100,"newPrice":80}`,
	} {
		w := performJSON(t, h.NotifyPriceDropHandler, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestNotifyPriceDropReportsCounts(t *testing.T) {
	h := NewNotifyHandler(&stubNotifyService{result: notify.Result{Notified: 2, Candidates: 3}})
	w := performJSON(t, h.NotifyPriceDropHandler,
		`{"productId":"p1","productName":"X","oldPrice":1000,"newPrice":800}`)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["notifiedCount"])
	assert.Equal(t, float64(3), body["totalWishlistUsers"])
}

func TestNotifyPriceDropZeroPriceAccepted(t *testing.T) {
	// A newPrice of 0 is a legitimate drop, not a missing field.
	h := NewNotifyHandler(&stubNotifyService{})
	w := performJSON(t, h.NotifyPriceDropHandler,
		`{"productId":"p1","productName":"X","oldPrice":100,"newPrice":0}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func multipartUpload(t *testing.T, userID, field, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if userID != "" {
		require.NoError(t, mw.WriteField("userId", userID))
	}
	if field != "" {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
		hdr.Set("Content-Type", contentType)
		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(payload)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func performUpload(t *testing.T, handler gin.HandlerFunc, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.POST("/x", handler)
	req := httptest.NewRequest(http.MethodPost, "/x", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)
	return w
}

func TestUploadRequiresUserID(t *testing.T) {
	h := NewStorageHandler(&stubStorageService{})
	body, ct := multipartUpload(t, "", "image", "a.png", "image/png", []byte("png-bytes"))
	w := performUpload(t, h.UploadProfileImageHandler, body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRequiresImageFile(t *testing.T) {
	h := NewStorageHandler(&stubStorageService{})
	body, ct := multipartUpload(t, "u1", "", "", "", nil)
	w := performUpload(t, h.UploadProfileImageHandler, body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRejectsNonImageMime(t *testing.T) {
	h := NewStorageHandler(&stubStorageService{})
	body, ct := multipartUpload(t, "u1", "image", "a.txt", "text/plain", []byte("hello"))
	w := performUpload(t, h.UploadProfileImageHandler, body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadSuccessReturnsURLAndID(t *testing.T) {
	h := NewStorageHandler(&stubStorageService{
		result: &models.UploadResult{PhotoURL: "https://cdn.example.com/x.jpg", PublicID: "profile_1"},
	})
	body, ct := multipartUpload(t, "u1", "image", "a.png", "image/png", []byte("png-bytes"))
	w := performUpload(t, h.UploadProfileImageHandler, body, ct)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "https://cdn.example.com/x.jpg", resp["photoURL"])
	assert.Equal(t, "profile_1", resp["publicId"])
}

func TestHealthReportsCollaborators(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.GET("/health", NewHealthHandler(CollaboratorStatus{
		FirebaseConnected: true,
		MailConfigured:    true,
	}))
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "connected", body["firebase"])
	assert.Equal(t, "configured", body["email"])
	assert.Equal(t, "not configured", body["cloudinary"])
}
