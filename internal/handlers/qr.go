package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/tappay/tappay/internal/logger"
)

// QRErrorResponse represents an error response for QR generation
// swagger:model QRErrorResponse
type QRErrorResponse struct {
	// Error message
	// default: QR generation unavailable
	Error string `json:"error"`
}

// NewQRHandler returns an HTTP handler that renders a payment QR code for a
// handle. The PNG encodes a deep link {baseURL}/{handle}; the handle is not
// checked for existence.
// @Summary Payment QR code
// @Description Returns a PNG QR code encoding the payment deep link for the handle
// @Tags profile
// @Produce png
// @Param handle path string true "Public handle"
// @Success 200 {file} binary "PNG image"
// @Failure 500 {object} handlers.QRErrorResponse "QR generation unavailable"
// @Router /qr/{handle} [get]
func NewQRHandler(baseURL string) http.HandlerFunc {
	base := strings.TrimRight(baseURL, "/")

	return func(w http.ResponseWriter, r *http.Request) {
		handle := chi.URLParam(r, "handle")
		link := fmt.Sprintf("%s/%s", base, handle)

		png, err := qrcode.Encode(link, qrcode.Medium, 256)
		if err != nil {
			logger.Log.Errorw("failed to render QR code", "link", link, "err", err)
			writeJSON(w, http.StatusInternalServerError, QRErrorResponse{Error: "QR generation unavailable"})
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		w.Write(png)
	}
}
