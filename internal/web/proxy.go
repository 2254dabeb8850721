package web

import (
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// proxyClient fetches remote audio on behalf of the player, which
// cannot read the bucket's public host cross-origin.
var proxyClient = &http.Client{Timeout: 5 * time.Minute}

// ProxyAudio handles GET /api/proxy/audio: streams the audio object at
// ?url= back to the caller with permissive CORS headers.
func (h *Handlers) ProxyAudio(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		respondError(w, http.StatusBadRequest, "No URL provided")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, rawURL, nil)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid URL")
		return
	}

	resp, err := proxyClient.Do(req)
	if err != nil {
		h.log.Error("proxying audio", zap.String("url", rawURL), zap.Error(err))
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Accept-Ranges", "bytes")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, resp.Body); err != nil {
		// The response is already streaming; all we can do is log.
		h.log.Warn("audio stream interrupted", zap.String("url", rawURL), zap.Error(err))
	}
}
