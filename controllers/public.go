// Package controllers holds the unauthenticated endpoints: health, the public
// charity list, the notify relay and the cron sweep entrypoint.
package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/ashitoshh01/do-or-due-sub000/models"
	"github.com/ashitoshh01/do-or-due-sub000/notifier"
	"github.com/ashitoshh01/do-or-due-sub000/scheduler"
	"github.com/ashitoshh01/do-or-due-sub000/utils"

	"gorm.io/gorm"
)

// Health responds once the database answers a ping.
func Health(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			utils.WriteJSON(w, http.StatusServiceUnavailable, utils.APIResponse{Success: false, Message: "Database unreachable"})
			return
		}
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK"})
	}
}

// CharityList is the public list of active charities shown at onboarding.
func CharityList(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var charities []models.Charity
		if err := db.Where("active = ?", true).Order("name ASC").Find(&charities).Error; err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
			return
		}
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: charities})
	}
}

type notifyRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NotifyAdmin relays a client-side event (a submitted proof, usually) to the
// reviewers' devices. The endpoint is CORS-open so the mobile web client can
// call it directly; the response mirrors the provider counts.
func NotifyAdmin(push *notifier.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req notifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" || req.Body == "" {
			http.Error(w, "title and body are required", http.StatusBadRequest)
			return
		}

		result, err := push.Send(r.Context(), notifier.Message{
			Title:  req.Title,
			Body:   req.Body,
			Tokens: push.ReviewerTokens(),
		})
		if err != nil {
			log.Printf("[notify-admin] dispatch failed: %v", err)
			http.Error(w, "failed to dispatch notification", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}
}

// ExpireOverdueSweep is the ops entrypoint mirroring the scheduled sweep, for
// platforms where in-process cron is unreliable.
func ExpireOverdueSweep(s *scheduler.Scanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := s.ExpireOverdue(r.Context())
		if err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Sweep failed", Data: map[string]interface{}{"expired": n}})
			return
		}
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: map[string]interface{}{"expired": n}})
	}
}
