package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ShadowArmy_Go/internal/catalog"
	"github.com/osse101/ShadowArmy_Go/internal/domain"
	"github.com/osse101/ShadowArmy_Go/internal/eventlog"
	"github.com/osse101/ShadowArmy_Go/internal/game"
	"github.com/osse101/ShadowArmy_Go/mocks"
)

// newTestRouter mounts handlers the way the server does so chi path params resolve
func newTestRouter(svc game.Service, activity eventlog.Service) http.Handler {
	r := chi.NewRouter()
	player := NewPlayerHandler(svc)
	hunting := NewHuntingHandler(svc)
	shadows := NewShadowHandler(svc)
	world := NewWorldHandler(svc)
	saves := NewSaveHandler(svc)
	admin := NewAdminHandler(svc)

	r.Get("/player", player.HandleGetPlayer)
	r.Post("/player/stats", player.HandleAllocateStat)
	r.Post("/hunting/start", hunting.HandleStart)
	r.Post("/hunting/stop", hunting.HandleStop)
	r.Post("/hunting/complete", hunting.HandleComplete)
	r.Get("/hunting/status", hunting.HandleStatus)
	r.Get("/shadows", shadows.HandleList)
	r.Get("/shadows/{id}", shadows.HandleGet)
	r.Post("/shadows/{id}/deploy", shadows.HandleDeploy)
	r.Post("/shadows/{id}/recall", shadows.HandleRecall)
	r.Post("/shadows/{id}/reassign", shadows.HandleReassign)
	r.Get("/deployments", shadows.HandleDeployments)
	r.Get("/catalog", world.HandleCatalog)
	r.Get("/stats", world.HandleStats)
	r.Get("/exp-rate", world.HandleExpRate)
	r.Post("/game/save", saves.HandleSave)
	r.Post("/game/load", saves.HandleLoad)
	r.Get("/activity", NewActivityHandler(activity).HandleRecent)
	r.Post("/admin/experience", admin.HandleApplyExperience)
	r.Post("/admin/shadows", admin.HandleExtractShadow)
	r.Post("/admin/reconcile", admin.HandleReconcile)
	r.Post("/admin/reset", admin.HandleReset)
	return r
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHandleGetPlayer(t *testing.T) {
	svc := mocks.NewMockGameService(t)
	svc.On("Player", mock.Anything).Return(domain.PlayerProgress{Name: "Jin", Level: 2, CurrentExp: 75, ExpToNext: 150})
	svc.On("ExpPerSecond", mock.Anything).Return(1.5)

	w := do(t, newTestRouter(svc, nil), http.MethodGet, "/player", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[PlayerResponse](t, w)
	assert.Equal(t, "Jin", resp.Name)
	assert.Equal(t, 50.0, resp.ProgressPercent)
	assert.Equal(t, "75 / 150", resp.ExpDisplay)
	assert.Equal(t, 1.5, resp.ExpPerSecond)
}

func TestHandleAllocateStat(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(*mocks.MockGameService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			body: AllocateStatRequest{Stat: "agility"},
			setupMocks: func(m *mocks.MockGameService) {
				m.On("AllocateStatPoint", mock.Anything, "agility").Return(true, nil)
				m.On("Player", mock.Anything).Return(domain.PlayerProgress{AvailableStatPoints: 4, Stats: domain.PlayerStats{Agility: 1}})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   MsgStatAllocated,
		},
		{
			name: "No Points",
			body: AllocateStatRequest{Stat: "agility"},
			setupMocks: func(m *mocks.MockGameService) {
				m.On("AllocateStatPoint", mock.Anything, "agility").Return(false, nil)
				m.On("Player", mock.Anything).Return(domain.PlayerProgress{})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   MsgNoStatPoints,
		},
		{
			name:           "Unknown Stat",
			body:           AllocateStatRequest{Stat: "luck"},
			setupMocks:     func(*mocks.MockGameService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name:           "Malformed JSON",
			body:           "not an object",
			setupMocks:     func(*mocks.MockGameService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockGameService(t)
			tt.setupMocks(svc)

			w := do(t, newTestRouter(svc, nil), http.MethodPost, "/player/stats", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestHuntingHandlers(t *testing.T) {
	cat := catalog.MustLoad()

	t.Run("Start", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("StartHunting", mock.Anything, "goblin-cave").Return(nil)
		svc.On("HuntingStatus", mock.Anything).Return(domain.HuntingStatus{Active: true, AreaID: "goblin-cave", RemainingMs: 3000})
		svc.On("Catalog").Return(cat)

		w := do(t, newTestRouter(svc, nil), http.MethodPost, "/hunting/start", StartHuntingRequest{AreaID: "goblin-cave"})

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[HuntingStatusResponse](t, w)
		assert.True(t, resp.Active)
		assert.Equal(t, "0:03", resp.Countdown)
		assert.NotEmpty(t, resp.AreaName)
	})

	t.Run("Start Locked Area", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("StartHunting", mock.Anything, "dragon-lair").Return(domain.ErrAreaLocked)

		w := do(t, newTestRouter(svc, nil), http.MethodPost, "/hunting/start", StartHuntingRequest{AreaID: "dragon-lair"})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgAreaLockedError)
	})

	t.Run("Start Unknown Area", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("StartHunting", mock.Anything, "nowhere").Return(domain.NotFoundf(domain.ErrAreaNotFound, "nowhere"))

		w := do(t, newTestRouter(svc, nil), http.MethodPost, "/hunting/start", StartHuntingRequest{AreaID: "nowhere"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Stop", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("StopHunting", mock.Anything).Return()

		w := do(t, newTestRouter(svc, nil), http.MethodPost, "/hunting/stop", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), MsgHuntingStopped)
	})

	t.Run("Complete Without Session", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("CompleteHunt", mock.Anything).Return(domain.HuntResult{}, domain.ErrNoActiveSession)

		w := do(t, newTestRouter(svc, nil), http.MethodPost, "/hunting/complete", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgNoActiveHuntError)
	})

	t.Run("Complete", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("CompleteHunt", mock.Anything).Return(domain.HuntResult{AreaID: "goblin-cave", Cycles: 1, ExpGained: 10}, nil)

		w := do(t, newTestRouter(svc, nil), http.MethodPost, "/hunting/complete", nil)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[HuntResultResponse](t, w)
		assert.Equal(t, 10.0, resp.Result.ExpGained)
	})

	t.Run("Idle Status", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("HuntingStatus", mock.Anything).Return(domain.HuntingStatus{})

		w := do(t, newTestRouter(svc, nil), http.MethodGet, "/hunting/status", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, decode[HuntingStatusResponse](t, w).Active)
	})
}

func TestShadowHandlers(t *testing.T) {
	view := game.ShadowView{
		ShadowInstance: domain.ShadowInstance{ID: "s1", TemplateID: "goblin-shadow", Level: 2},
		Name:           "Goblin Shadow",
		Rarity:         domain.RarityCommon,
		ExpPerSecond:   1.1,
	}

	t.Run("List", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("Shadows", mock.Anything).Return([]game.ShadowView{view})

		w := do(t, newTestRouter(svc, nil), http.MethodGet, "/shadows", nil)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[ShadowListResponse](t, w)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "Common", resp.Shadows[0].RarityDisplay)
		assert.Equal(t, "1.1/s", resp.Shadows[0].RateDisplay)
	})

	t.Run("Get Missing", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("Shadow", mock.Anything, "nope").Return(game.ShadowView{}, domain.NotFoundf(domain.ErrShadowNotFound, "nope"))

		w := do(t, newTestRouter(svc, nil), http.MethodGet, "/shadows/nope", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgShadowNotFoundError)
	})

	t.Run("Deploy", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("Deploy", mock.Anything, "s1", "goblin-cave").Return(nil)

		w := do(t, newTestRouter(svc, nil), http.MethodPost, "/shadows/s1/deploy", AssignAreaRequest{AreaID: "goblin-cave"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), MsgShadowDeployed)
	})

	t.Run("Deploy Twice", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("Deploy", mock.Anything, "s1", "goblin-cave").Return(domain.ErrAlreadyDeployed)

		w := do(t, newTestRouter(svc, nil), http.MethodPost, "/shadows/s1/deploy", AssignAreaRequest{AreaID: "goblin-cave"})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Deploy Missing Area", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)

		w := do(t, newTestRouter(svc, nil), http.MethodPost, "/shadows/s1/deploy", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "areaid")
	})

	t.Run("Reassign Idle", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("Reassign", mock.Anything, "s1", "spider-den").Return(domain.ErrNotDeployed)

		w := do(t, newTestRouter(svc, nil), http.MethodPost, "/shadows/s1/reassign", AssignAreaRequest{AreaID: "spider-den"})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgNotDeployedError)
	})

	t.Run("Recall", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("Recall", mock.Anything, "s1").Return(nil)

		w := do(t, newTestRouter(svc, nil), http.MethodPost, "/shadows/s1/recall", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Deployments Sorted", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("Deployments", mock.Anything).Return(map[string][]string{"spider-den": {"s2"}, "goblin-cave": {"s1"}})
		svc.On("Catalog").Return(catalog.MustLoad())

		w := do(t, newTestRouter(svc, nil), http.MethodGet, "/deployments", nil)

		require.Equal(t, http.StatusOK, w.Code)
		groups := decode[[]DeploymentGroup](t, w)
		require.Len(t, groups, 2)
		assert.Equal(t, "goblin-cave", groups[0].AreaID)
		assert.NotEmpty(t, groups[0].AreaName)
	})
}

func TestWorldHandlers(t *testing.T) {
	cat := catalog.MustLoad()

	t.Run("Catalog Marks Unlocked Areas", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("Catalog").Return(cat)
		svc.On("UnlockedAreas", mock.Anything).Return(cat.AreasUnlockedAt(1))

		w := do(t, newTestRouter(svc, nil), http.MethodGet, "/catalog", nil)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[CatalogResponse](t, w)
		require.Len(t, resp.Areas, len(cat.Areas()))
		for _, a := range resp.Areas {
			assert.Equal(t, a.UnlockLevel <= 1, a.Unlocked, a.ID)
		}
		assert.Equal(t, "3s", resp.Areas[0].HuntDurationText)
		assert.NotEmpty(t, resp.Shadows)
	})

	t.Run("Stats", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("HunterStats", mock.Anything).Return(domain.HunterStats{TotalHunts: 3, TimeSpentHuntingMs: int64(90 * time.Second / time.Millisecond)})
		svc.On("ExpPerSecond", mock.Anything).Return(2500.0)
		svc.On("ArmyStats", mock.Anything).Return(domain.ShadowArmyStats{TotalShadows: 2})

		w := do(t, newTestRouter(svc, nil), http.MethodGet, "/stats", nil)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[StatsResponse](t, w)
		assert.Equal(t, "2.5K/s", resp.ExpPerSecondText)
		assert.Equal(t, "1m 30s", resp.TimeHuntingText)
		assert.Equal(t, 2, resp.Army.TotalShadows)
	})

	t.Run("Exp Rate", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("ExpPerSecond", mock.Anything).Return(2.0)

		w := do(t, newTestRouter(svc, nil), http.MethodGet, "/exp-rate", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 7200.0, decode[ExpRateResponse](t, w).ExpPerHour)
	})
}

func TestSaveHandlers(t *testing.T) {
	t.Run("Save Without Storage", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("Save", mock.Anything).Return(game.ErrNoRepository)

		w := do(t, newTestRouter(svc, nil), http.MethodPost, "/game/save", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("Load Reports Offline Time", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("Load", mock.Anything).Return(domain.OfflineReport{Applied: true, TimeOffline: 2 * time.Hour, ExpGained: 100}, nil)

		w := do(t, newTestRouter(svc, nil), http.MethodPost, "/game/load", nil)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[OfflineReportResponse](t, w)
		assert.Equal(t, MsgGameLoaded, resp.Message)
		assert.Equal(t, "2h 0m 0s", resp.Away)
	})

	t.Run("Load Corrupt", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("Load", mock.Anything).Return(domain.OfflineReport{}, domain.ErrCorruptSnapshot)

		w := do(t, newTestRouter(svc, nil), http.MethodPost, "/game/load", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestAdminHandlers(t *testing.T) {
	t.Run("Apply Experience", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		out := game.ExperienceOutcome{LevelUpResult: domain.LevelUpResult{ExpApplied: 250, OldLevel: 1, NewLevel: 3}}
		svc.On("ApplyExperience", mock.Anything, 250.0).Return(out, nil)
		svc.On("Player", mock.Anything).Return(domain.PlayerProgress{Level: 3})

		w := do(t, newTestRouter(svc, nil), http.MethodPost, "/admin/experience", ApplyExperienceRequest{Amount: 250})

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[ExperienceResponse](t, w)
		assert.Equal(t, 3, resp.Outcome.NewLevel)
		assert.Equal(t, 3, resp.Player.Level)
	})

	t.Run("Apply Negative Experience", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)

		w := do(t, newTestRouter(svc, nil), http.MethodPost, "/admin/experience", ApplyExperienceRequest{Amount: -5})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Extract", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("ExtractShadow", mock.Anything, "goblin-shadow").Return("s9", nil)

		w := do(t, newTestRouter(svc, nil), http.MethodPost, "/admin/shadows", ExtractShadowRequest{TemplateID: "goblin-shadow"})

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "s9", decode[ExtractShadowResponse](t, w).ShadowID)
	})

	t.Run("Reconcile Nothing", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("Reconcile", mock.Anything).Return(domain.OfflineReport{TimeOffline: 10 * time.Second}, nil)

		w := do(t, newTestRouter(svc, nil), http.MethodPost, "/admin/reconcile", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, MsgNothingOffline, decode[OfflineReportResponse](t, w).Message)
	})

	t.Run("Reset", func(t *testing.T) {
		svc := mocks.NewMockGameService(t)
		svc.On("ResetGame", mock.Anything).Return(nil)

		w := do(t, newTestRouter(svc, nil), http.MethodPost, "/admin/reset", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHandleRecentActivity(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		w := do(t, newTestRouter(mocks.NewMockGameService(t), nil), http.MethodGet, "/activity", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("Filtered", func(t *testing.T) {
		activity := mocks.NewMockEventLogService(t)
		activity.On("Recent", mock.Anything, "hunt.completed", 5).Return([]eventlog.Entry{{ID: 1, EventType: "hunt.completed"}}, nil)

		w := do(t, newTestRouter(mocks.NewMockGameService(t), activity), http.MethodGet, "/activity?type=hunt.completed&limit=5", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, decode[ActivityResponse](t, w).Count)
	})

	t.Run("Bad Limit", func(t *testing.T) {
		activity := mocks.NewMockEventLogService(t)

		w := do(t, newTestRouter(mocks.NewMockGameService(t), activity), http.MethodGet, "/activity?limit=abc", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidLimit)
	})
}
