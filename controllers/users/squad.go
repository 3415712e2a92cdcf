package users

import (
	"crypto/rand"
	"errors"
	"math/big"
	"net/http"
	"strings"

	"github.com/ashitoshh01/do-or-due-sub000/middleware"
	"github.com/ashitoshh01/do-or-due-sub000/models"
	"github.com/ashitoshh01/do-or-due-sub000/utils"

	"gorm.io/gorm"
)

const inviteCodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generateInviteCode() string {
	b := make([]byte, 6)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(inviteCodeCharset))))
		if err != nil {
			b[i] = inviteCodeCharset[0]
			continue
		}
		b[i] = inviteCodeCharset[n.Int64()]
	}
	return string(b)
}

// generateUniqueInviteCode retries on collisions against the unique index.
func generateUniqueInviteCode(db *gorm.DB) (string, error) {
	for i := 0; i < 10; i++ {
		code := generateInviteCode()
		var count int64
		if err := db.Model(&models.Squad{}).Where("invite_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("failed to generate unique invite code")
}

type createSquadRequest struct {
	Name string `json:"name" validate:"required,nameok,maxlen=100"`
}

// POST /v1/users/squads
func (c *Controller) CreateSquad(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireProfile(w, r)
	if !ok {
		return
	}
	var req createSquadRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var squad models.Squad
	err := c.DB.Transaction(func(tx *gorm.DB) error {
		code, err := generateUniqueInviteCode(tx)
		if err != nil {
			return err
		}
		squad = models.Squad{
			Name:       strings.TrimSpace(req.Name),
			InviteCode: code,
			CreatedBy:  uid,
		}
		if err := tx.Create(&squad).Error; err != nil {
			return err
		}
		return tx.Create(&models.SquadMember{SquadID: squad.ID, UserID: uid}).Error
	})
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create squad"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Squad created", Data: squad})
}

type joinSquadRequest struct {
	InviteCode string `json:"invite_code" validate:"required,code6"`
}

// POST /v1/users/squads/join
func (c *Controller) JoinSquad(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireProfile(w, r)
	if !ok {
		return
	}
	var req joinSquadRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var squad models.Squad
	if err := c.DB.Where("invite_code = ?", strings.ToUpper(strings.TrimSpace(req.InviteCode))).First(&squad).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Invite code not found"})
		return
	}

	var existing models.SquadMember
	if err := c.DB.Where("squad_id = ? AND user_id = ?", squad.ID, uid).First(&existing).Error; err == nil {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Already a member of this squad"})
		return
	}

	if err := c.DB.Create(&models.SquadMember{SquadID: squad.ID, UserID: uid}).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to join squad"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Joined squad", Data: squad})
}

// DELETE /v1/users/squads/{id}/membership
func (c *Controller) LeaveSquad(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireProfile(w, r)
	if !ok {
		return
	}
	squadID, ok := pathID(w, r)
	if !ok {
		return
	}
	res := c.DB.Where("squad_id = ? AND user_id = ?", squadID, uid).Delete(&models.SquadMember{})
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Not a member of this squad"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Left squad"})
}

// GET /v1/users/squads
// Lists the caller's squads with a member scoreboard: streaks and success
// counts of every member, visible to the whole squad.
func (c *Controller) ListSquads(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireProfile(w, r)
	if !ok {
		return
	}

	var memberships []models.SquadMember
	if err := c.DB.Where("user_id = ?", uid).Find(&memberships).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	if len(memberships) == 0 {
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: []interface{}{}})
		return
	}

	squadIDs := make([]uint, 0, len(memberships))
	for _, m := range memberships {
		squadIDs = append(squadIDs, m.SquadID)
	}

	var squads []models.Squad
	if err := c.DB.Where("id IN ?", squadIDs).Find(&squads).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	type memberDTO struct {
		UserID        uint   `json:"user_id"`
		Name          string `json:"name"`
		Streak        int    `json:"streak"`
		LongestStreak int    `json:"longest_streak"`
		StatsSuccess  int64  `json:"stats_success"`
	}
	resp := make([]map[string]interface{}, 0, len(squads))
	for _, s := range squads {
		var members []models.SquadMember
		c.DB.Where("squad_id = ?", s.ID).Find(&members)
		memberIDs := make([]uint, 0, len(members))
		for _, m := range members {
			memberIDs = append(memberIDs, m.UserID)
		}
		var users []models.User
		if len(memberIDs) > 0 {
			c.DB.Where("id IN ?", memberIDs).Order("streak DESC").Find(&users)
		}
		board := make([]memberDTO, 0, len(users))
		for _, u := range users {
			board = append(board, memberDTO{
				UserID:        u.ID,
				Name:          u.Name,
				Streak:        u.Streak,
				LongestStreak: u.LongestStreak,
				StatsSuccess:  u.StatsSuccess,
			})
		}
		resp = append(resp, map[string]interface{}{
			"squad":   s,
			"members": board,
		})
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: resp})
}
