package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ZetaFarm_Go/internal/checkin"
	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/farm"
	"github.com/osse101/ZetaFarm_Go/internal/gacha"
	"github.com/osse101/ZetaFarm_Go/internal/handler"
	"github.com/osse101/ZetaFarm_Go/internal/letters"
	"github.com/osse101/ZetaFarm_Go/internal/shop"
	"github.com/osse101/ZetaFarm_Go/mocks"
)

const testAddress = "0xfarmer"

type serviceMocks struct {
	farm    *mocks.MockFarmService
	shop    *mocks.MockShopService
	gacha   *mocks.MockGachaService
	checkin *mocks.MockCheckinService
	letters *mocks.MockLettersService
}

func newActionHandler() (*handler.ActionHandler, *serviceMocks) {
	m := &serviceMocks{
		farm:    &mocks.MockFarmService{},
		shop:    &mocks.MockShopService{},
		gacha:   &mocks.MockGachaService{},
		checkin: &mocks.MockCheckinService{},
		letters: &mocks.MockLettersService{},
	}
	return handler.NewActionHandler(m.farm, m.shop, m.gacha, m.checkin, m.letters), m
}

func (m *serviceMocks) assertExpectations(t *testing.T) {
	m.farm.AssertExpectations(t)
	m.shop.AssertExpectations(t)
	m.gacha.AssertExpectations(t)
	m.checkin.AssertExpectations(t)
	m.letters.AssertExpectations(t)
}

func postJSON(t *testing.T, h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestActionHandler_Types(t *testing.T) {
	h, _ := newActionHandler()

	types := h.Types()
	sort.Strings(types)
	want := []string{
		domain.ActionBuyFertilizer, domain.ActionBuyPet, domain.ActionBuySeed, domain.ActionCheckIn,
		domain.ActionDraw, domain.ActionExchange, domain.ActionFertilize, domain.ActionHarvest,
		domain.ActionLetterExchange, domain.ActionPesticide, domain.ActionPlant, domain.ActionRobotSubscribe,
		domain.ActionSellFruit, domain.ActionShovel, domain.ActionUnlockPlot, domain.ActionWater, domain.ActionWeed,
	}
	sort.Strings(want)
	assert.Equal(t, want, types)
}

func TestHandleAction_Dispatch(t *testing.T) {
	view := &farm.View{Address: testAddress}

	tests := []struct {
		name   string
		body   string
		setup  func(m *serviceMocks)
		status int
	}{
		{
			name: "plant",
			body: `{"address":"0xfarmer","type":"plant","data":{"plotId":2,"cropId":"seed_0"}}`,
			setup: func(m *serviceMocks) {
				m.farm.On("Plant", mock.Anything, testAddress, 2, "seed_0").Return(view, nil)
			},
			status: http.StatusOK,
		},
		{
			name: "water",
			body: `{"address":"0xfarmer","type":"water","data":{"plotId":0}}`,
			setup: func(m *serviceMocks) {
				m.farm.On("Water", mock.Anything, testAddress, 0).Return(view, nil)
			},
			status: http.StatusOK,
		},
		{
			name: "harvest",
			body: `{"address":"0xfarmer","type":"harvest","data":{"plotId":4}}`,
			setup: func(m *serviceMocks) {
				m.farm.On("Harvest", mock.Anything, testAddress, 4).Return(&farm.HarvestResult{Farm: view, CropID: "radish", Yield: 1}, nil)
			},
			status: http.StatusOK,
		},
		{
			name: "robot subscribe",
			body: `{"address":"0xfarmer","type":"robot_subscribe","data":{"name":"Ada","email":"ada@example.com","acceptMarketing":true}}`,
			setup: func(m *serviceMocks) {
				m.farm.On("SubscribeRobot", mock.Anything, testAddress, farm.RobotRequest{
					Name: "Ada", Email: "ada@example.com", AcceptMarketing: true,
				}).Return(view, nil)
			},
			status: http.StatusOK,
		},
		{
			name: "buy seed",
			body: `{"address":"0xfarmer","type":"buy_seed","data":{"itemId":"radish","quantity":5}}`,
			setup: func(m *serviceMocks) {
				m.shop.On("BuySeed", mock.Anything, testAddress, "radish", int64(5)).Return(&shop.Receipt{}, nil)
			},
			status: http.StatusOK,
		},
		{
			name: "exchange accepts string coins",
			body: `{"address":"0xfarmer","type":"exchange","data":{"currency":"zeta","coins":"40.5"}}`,
			setup: func(m *serviceMocks) {
				m.shop.On("Exchange", mock.Anything, testAddress, "zeta", mock.MatchedBy(func(d decimal.Decimal) bool {
					return d.Equal(decimal.RequireFromString("40.5"))
				})).Return(&shop.Receipt{}, nil)
			},
			status: http.StatusOK,
		},
		{
			name: "draw",
			body: `{"address":"0xfarmer","type":"draw","data":{"count":3}}`,
			setup: func(m *serviceMocks) {
				m.gacha.On("Draw", mock.Anything, testAddress, 3).Return(&gacha.DrawResult{}, nil)
			},
			status: http.StatusOK,
		},
		{
			name: "checkin without data",
			body: `{"address":"0xfarmer","type":"checkin"}`,
			setup: func(m *serviceMocks) {
				m.checkin.On("CheckIn", mock.Anything, testAddress).Return(&checkin.Result{}, nil)
			},
			status: http.StatusOK,
		},
		{
			name: "letter exchange",
			body: `{"address":"0xfarmer","type":"letter_exchange","data":{"phraseIndex":1}}`,
			setup: func(m *serviceMocks) {
				m.letters.On("Redeem", mock.Anything, testAddress, 1).Return(&letters.Redemption{Reward: "eth"}, nil)
			},
			status: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newActionHandler()
			tt.setup(m)

			w := postJSON(t, h.HandleAction, tt.body)

			assert.Equal(t, tt.status, w.Code, w.Body.String())
			m.assertExpectations(t)
		})
	}
}

func TestHandleAction_RequestErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{"malformed json", `{"address":`, handler.ErrMsgInvalidRequest},
		{"missing address", `{"type":"water","data":{"plotId":1}}`, handler.ErrMsgInvalidRequestSummary},
		{"bad address characters", `{"address":"0x farmer","type":"water"}`, handler.ErrMsgInvalidRequestSummary},
		{"missing type", `{"address":"0xfarmer"}`, handler.ErrMsgInvalidRequestSummary},
		{"unknown type", `{"address":"0xfarmer","type":"dance"}`, fmt.Sprintf(handler.ErrMsgUnknownActionType, "dance")},
		{"negative plot", `{"address":"0xfarmer","type":"water","data":{"plotId":-1}}`, fmt.Sprintf(handler.ErrMsgInvalidActionData, "water")},
		{"wrong data type", `{"address":"0xfarmer","type":"water","data":{"plotId":"one"}}`, fmt.Sprintf(handler.ErrMsgInvalidActionData, "water")},
		{"plant without crop", `{"address":"0xfarmer","type":"plant","data":{"plotId":1}}`, fmt.Sprintf(handler.ErrMsgInvalidActionData, "plant")},
		{"robot bad email", `{"address":"0xfarmer","type":"robot_subscribe","data":{"name":"Ada","email":"nope"}}`, fmt.Sprintf(handler.ErrMsgInvalidActionData, "robot_subscribe")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newActionHandler()

			w := postJSON(t, h.HandleAction, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantError, decodeError(t, w).Error)
			m.assertExpectations(t)
		})
	}
}

func TestHandleAction_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"precondition", fmt.Errorf("%w: plot 3", domain.ErrNothingToWater), http.StatusBadRequest, string(domain.ReasonNothingToWater)},
		{"conflict", domain.ErrPlotOccupied, http.StatusConflict, string(domain.ReasonPlotOccupied)},
		{"farm not found", domain.ErrFarmNotFound, http.StatusNotFound, ""},
		{"unexpected", assert.AnError, http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newActionHandler()
			m.farm.On("Water", mock.Anything, testAddress, 3).Return(nil, tt.err)

			w := postJSON(t, h.HandleAction, `{"address":"0xfarmer","type":"water","data":{"plotId":3}}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.wantCode, resp.Code)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.Equal(t, handler.ErrMsgGenericServerError, resp.Error)
				assert.NotContains(t, w.Body.String(), assert.AnError.Error())
			}
		})
	}
}

func TestDedicatedRoutes(t *testing.T) {
	view := &farm.View{Address: testAddress}

	t.Run("water reads address and plot from one body", func(t *testing.T) {
		h, m := newActionHandler()
		m.farm.On("Water", mock.Anything, testAddress, 5).Return(view, nil)

		w := postJSON(t, h.Water, map[string]interface{}{"address": testAddress, "plotId": 5})

		assert.Equal(t, http.StatusOK, w.Code)
		var got farm.View
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, testAddress, got.Address)
		m.assertExpectations(t)
	})

	t.Run("sell fruit", func(t *testing.T) {
		h, m := newActionHandler()
		m.shop.On("SellFruit", mock.Anything, testAddress, "fruit_2", int64(3)).
			Return(&shop.Receipt{ItemID: "corn", Quantity: 3, Coins: decimal.NewFromInt(75)}, nil)

		w := postJSON(t, h.SellFruit, map[string]interface{}{"address": testAddress, "itemId": "fruit_2", "quantity": 3})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"coins":"75"`)
		m.assertExpectations(t)
	})

	t.Run("already checked in is a conflict", func(t *testing.T) {
		h, m := newActionHandler()
		m.checkin.On("CheckIn", mock.Anything, testAddress).Return(nil, domain.ErrAlreadyCheckedIn)

		w := postJSON(t, h.CheckIn, map[string]interface{}{"address": testAddress})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, string(domain.ReasonAlreadyCheckedIn), decodeError(t, w).Code)
	})

	t.Run("missing address", func(t *testing.T) {
		h, m := newActionHandler()

		w := postJSON(t, h.Draw, map[string]interface{}{"count": 1})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		m.assertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		h, _ := newActionHandler()

		w := postJSON(t, h.Harvest, `not json`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, handler.ErrMsgInvalidRequest, decodeError(t, w).Error)
	})
}
