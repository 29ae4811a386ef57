package crowdestate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/marcelofeitoza/crowd-estate/schema"
	"github.com/stretchr/testify/assert"
)

func newTestAPI(t *testing.T) *CrowdEstate {
	s := newTestPlatform(t)
	s.registerRoutes()
	return s
}

func doJSON(t *testing.T, s *CrowdEstate, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func TestAPICreateAndGetProperty(t *testing.T) {
	s := newTestAPI(t)
	admin := solana.NewWallet().PublicKey()

	w := doJSON(t, s, "POST", "/property", schema.ReqCreateProperty{
		Admin: admin.String(), Name: "Sunset Villa", TotalUnits: 1000, UnitPrice: 50_000_000, Symbol: "SVL",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	created := schema.RespProperty{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, uint64(1000), created.TotalUnits)
	assert.Equal(t, "50", created.UnitPriceDisplay)

	w = doJSON(t, s, "GET", fmt.Sprintf("/property/%s", created.Address.String()), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// a duplicate slot is a client error
	w = doJSON(t, s, "POST", "/property", schema.ReqCreateProperty{
		Admin: admin.String(), Name: "Sunset Villa", TotalUnits: 10, UnitPrice: 1, Symbol: "SVL",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	respErr := schema.RespErr{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &respErr))
	assert.Equal(t, schema.ErrPropertyExist.Error(), respErr.Err)
}

func TestAPIPropertyNotFound(t *testing.T) {
	s := newTestAPI(t)

	w := doJSON(t, s, "GET", fmt.Sprintf("/property/%s", solana.NewWallet().PublicKey().String()), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// an unparseable address is a client error, not a 404
	w = doJSON(t, s, "GET", "/property/not-base58", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPIInvestFlow(t *testing.T) {
	s := newTestAPI(t)
	admin := solana.NewWallet().PublicKey()
	investor := solana.NewWallet().PublicKey()

	prop, err := s.CreateProperty(admin, "Harbor Lofts", 1000, 2_000_000, "HRB")
	assert.NoError(t, err)

	w := doJSON(t, s, "POST", "/airdrop", schema.ReqAirdrop{Owner: investor.String(), Amount: 10_000_000})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, "POST", fmt.Sprintf("/property/%s/invest", prop.Address.String()), schema.ReqInvest{
		Investor: investor.String(), PaymentAmount: 10_000_000,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	inv := schema.Investment{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &inv))
	assert.Equal(t, uint64(5), inv.UnitsOwned)

	w = doJSON(t, s, "GET", fmt.Sprintf("/investment/%s/%s", prop.Address.String(), investor.String()), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, "POST", fmt.Sprintf("/property/%s/withdraw", prop.Address.String()), schema.ReqWithdraw{
		Investor: investor.String(), Admin: admin.String(),
	})
	assert.Equal(t, http.StatusOK, w.Code)
	wd := schema.RespWithdraw{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &wd))
	assert.Equal(t, uint64(10_000_000), wd.Refund)
}

func TestAPIGovernanceFlow(t *testing.T) {
	s := newTestAPI(t)
	admin := solana.NewWallet().PublicKey()
	proposer := solana.NewWallet().PublicKey()

	prop, err := s.CreateProperty(admin, "Lakeside Rows", 1000, 1_000_000, "LKS")
	assert.NoError(t, err)

	w := doJSON(t, s, "POST", "/proposal", schema.ReqCreateProposal{
		Proposer: proposer.String(), Property: prop.Address.String(),
		Description: "mint more", Kind: schema.ActionKindMintUnits, Amount: 500,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	pps := schema.Proposal{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &pps))

	w = doJSON(t, s, "POST", fmt.Sprintf("/proposal/%s/vote", pps.Address.String()), schema.ReqVote{
		Voter: solana.NewWallet().PublicKey().String(), InFavor: true,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, "POST", fmt.Sprintf("/proposal/%s/execute", pps.Address.String()), schema.ReqExecuteProposal{
		Caller: proposer.String(),
	})
	assert.Equal(t, http.StatusOK, w.Code)
	executed := schema.Proposal{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &executed))
	assert.True(t, executed.IsExecuted)

	// an unknown kind never reaches the engine
	w = doJSON(t, s, "POST", "/proposal", schema.ReqCreateProposal{
		Proposer: proposer.String(), Property: prop.Address.String(),
		Description: "???", Kind: "dissolve_property",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPIInfo(t *testing.T) {
	s := newTestAPI(t)

	w := doJSON(t, s, "GET", "/info", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	info := schema.PlatformInfo{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, schema.ProgramID.String(), info.ProgramID)
	assert.Equal(t, testPaymentMint, info.PaymentMint)
	assert.Equal(t, Version, info.Version)
}
