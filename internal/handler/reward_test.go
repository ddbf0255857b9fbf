package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/TaskQuest_Go/internal/domain"
)

func TestRewardHandlers_List(t *testing.T) {
	svc := &MockRewardService{}
	svc.On("ListRewards", mock.Anything, testUserID).
		Return([]domain.Reward{{ID: "r1", Name: "Coffee", TodayUsage: 1, CanRedeem: true}}, nil)

	w := serve(NewRewardHandlers(svc, testUserID).HandleList(), newRequest(t, "GET", "/api/v1/rewards", "", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"todayUsage":1`)
}

func TestRewardHandlers_Create(t *testing.T) {
	InitValidator()

	t.Run("category upper-cased", func(t *testing.T) {
		svc := &MockRewardService{}
		svc.On("CreateReward", mock.Anything, domain.CreateRewardInput{Name: "Coffee", GoldCost: 20, Category: "TREAT"}).
			Return(&domain.Reward{ID: "r1", Name: "Coffee", GoldCost: 20, Category: "TREAT"}, nil)

		w := serve(NewRewardHandlers(svc, testUserID).HandleCreate(),
			newRequest(t, "POST", "/api/v1/rewards", "", `{"name":"Coffee","goldCost":20,"category":"treat"}`))

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing cost", `{"name":"Coffee"}`, "goldcost"},
		{"zero cost", `{"name":"Coffee","goldCost":0}`, "goldcost"},
		{"unknown category", `{"name":"Coffee","goldCost":5,"category":"LUXURY"}`, "category"},
		{"negative daily limit", `{"name":"Coffee","goldCost":5,"dailyLimit":-1}`, "dailylimit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockRewardService{}

			w := serve(NewRewardHandlers(svc, testUserID).HandleCreate(), newRequest(t, "POST", "/api/v1/rewards", "", tt.body))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp ValidationErrorResponse
			decodeBody(t, w, &resp)
			assert.Contains(t, resp.Fields, tt.field)
		})
	}
}

func TestRewardHandlers_Update(t *testing.T) {
	InitValidator()

	svc := &MockRewardService{}
	active := false
	category := "HEALTH"
	svc.On("UpdateReward", mock.Anything, "r1", domain.RewardUpdate{Category: &category, IsActive: &active}).
		Return(&domain.Reward{ID: "r1", Category: "HEALTH"}, nil)

	w := serve(NewRewardHandlers(svc, testUserID).HandleUpdate(),
		newRequest(t, "PATCH", "/api/v1/rewards/r1", "r1", `{"category":"health","isActive":false}`))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestRewardHandlers_GetAndDelete(t *testing.T) {
	svc := &MockRewardService{}
	svc.On("GetReward", mock.Anything, "r1").Return(&domain.Reward{ID: "r1", Name: "Coffee"}, nil)
	svc.On("DeleteReward", mock.Anything, "r2").Return(domain.ErrRewardNotFound)
	h := NewRewardHandlers(svc, testUserID)

	w := serve(h.HandleGet(), newRequest(t, "GET", "/api/v1/rewards/r1", "r1", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(h.HandleDelete(), newRequest(t, "DELETE", "/api/v1/rewards/r2", "r2", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgRewardNotFoundError)
}

func TestRewardHandlers_Redeem(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &MockRewardService{}
		svc.On("Redeem", mock.Anything, testUserID, "r1").Return(&domain.RedeemResult{
			Redemption: domain.RewardRedemption{ID: "red-1", RewardID: "r1", GoldSpent: 20},
			Reward:     domain.Reward{ID: "r1", TodayUsage: 1},
			Gold:       30,
		}, nil)

		w := serve(NewRewardHandlers(svc, testUserID).HandleRedeem(), newRequest(t, "POST", "/api/v1/rewards/r1/redeem", "r1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var got domain.RedeemResult
		decodeBody(t, w, &got)
		assert.Equal(t, 30, got.Gold)
		assert.Equal(t, 20, got.Redemption.GoldSpent)
	})

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not enough gold", fmt.Errorf("%w: need 20 gold, have 5", domain.ErrInsufficientGold), http.StatusBadRequest, ErrMsgNotEnoughGoldError},
		{"daily limit", domain.ErrDailyLimitReached, http.StatusBadRequest, ErrMsgDailyLimitError},
		{"inactive", domain.ErrRewardInactive, http.StatusBadRequest, ErrMsgRewardInactiveError},
		{"unknown", domain.ErrRewardNotFound, http.StatusNotFound, ErrMsgRewardNotFoundError},
		{"database", assert.AnError, http.StatusInternalServerError, ErrMsgGenericServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockRewardService{}
			svc.On("Redeem", mock.Anything, testUserID, "r1").Return(nil, tt.err)

			w := serve(NewRewardHandlers(svc, testUserID).HandleRedeem(), newRequest(t, "POST", "/api/v1/rewards/r1/redeem", "r1", nil))

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
		})
	}
}
