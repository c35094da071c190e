package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"Go_Discovery/src/discovery"
	"Go_Discovery/src/types"
)

type Discoverer interface {
	Discover(ctx context.Context, latRaw, lonRaw string) (types.Discovery, error)
}

func HandleDiscoveryAPI(w http.ResponseWriter, r *http.Request, svc Discoverer, logger *zap.Logger) {
	query := r.URL.Query()

	response, err := svc.Discover(r.Context(), query.Get("lat"), query.Get("lon"))
	if err != nil {
		var verr *discovery.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Message, http.StatusBadRequest)
			return
		}
		logger.Error("discovery failed", zap.Error(err))
		http.Error(w, "Error fetching restaurants", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, response, logger)
}

func HandleHealth(w http.ResponseWriter, r *http.Request, logger *zap.Logger) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}, logger *zap.Logger) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Error("encode response", zap.Error(err))
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(data, '\n')); err != nil {
		logger.Debug("write response", zap.Error(err))
	}
}
