package crowdestate

import (
	"errors"
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
	"github.com/marcelofeitoza/crowd-estate/common"
	"github.com/marcelofeitoza/crowd-estate/rawdb"
	"github.com/marcelofeitoza/crowd-estate/schema"
)

func (s *CrowdEstate) runAPI(port string) {
	s.registerRoutes()
	if err := s.engine.Run(port); err != nil {
		panic(err)
	}
}

func (s *CrowdEstate) registerRoutes() {
	r := s.engine
	r.Use(common.CORSMiddleware())
	r.Use(common.LimiterMiddleware(600, "M", nil))

	v1 := r.Group("/")
	{
		v1.POST("/property", s.createProperty)
		v1.GET("/property/:address", s.getProperty)
		v1.GET("/properties", s.listProperties)
		v1.POST("/property/:address/mint", s.mintAdditionalUnits)
		v1.PUT("/property/:address", s.updateProperty)
		v1.DELETE("/property/:address", s.closeProperty)

		v1.POST("/property/:address/invest", s.invest)
		v1.POST("/property/:address/withdraw", s.withdraw)
		v1.GET("/investments/:investor", s.listInvestments)
		v1.GET("/investment/:property/:investor", s.getInvestment)

		v1.POST("/property/:address/dividends", s.distributeDividends)
		v1.POST("/property/:address/redeem", s.redeemDividends)

		v1.POST("/proposal", s.createProposal)
		v1.GET("/proposal/:address", s.getProposal)
		v1.GET("/proposals/:property", s.listProposals)
		v1.POST("/proposal/:address/vote", s.vote)
		v1.POST("/proposal/:address/execute", s.executeProposal)

		v1.GET("/balance/:mint/:owner", s.getBalance)
		v1.GET("/info", s.getInfo)
		v1.GET("/stats", s.getStats)

		if s.enableFaucet {
			v1.POST("/airdrop", s.airdrop)
		}
	}
}

func (s *CrowdEstate) createProperty(c *gin.Context) {
	req := schema.ReqCreateProperty{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	admin, err := solana.PublicKeyFromBase58(req.Admin)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	prop, err := s.CreateProperty(admin, req.Name, req.TotalUnits, req.UnitPrice, req.Symbol)
	if err != nil {
		respondOpErr(c, err)
		return
	}
	c.JSON(http.StatusOK, respProperty(prop))
}

func (s *CrowdEstate) getProperty(c *gin.Context) {
	addr, err := solana.PublicKeyFromBase58(c.Param("address"))
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	prop, err := s.GetProperty(addr)
	if err != nil {
		respondOpErr(c, err)
		return
	}
	c.JSON(http.StatusOK, respProperty(prop))
}

func (s *CrowdEstate) listProperties(c *gin.Context) {
	rows, err := s.listCache.GetProperties()
	if err != nil {
		rows, err = s.wdb.GetProperties(false)
		if err != nil {
			internalErrorResponse(c, err.Error())
			return
		}
		if err := s.listCache.SetProperties(rows); err != nil {
			log.Warn("cache property list", "err", err)
		}
	}
	c.JSON(http.StatusOK, rows)
}

func (s *CrowdEstate) mintAdditionalUnits(c *gin.Context) {
	req := schema.ReqMintUnits{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	property, err := solana.PublicKeyFromBase58(c.Param("address"))
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	admin, err := solana.PublicKeyFromBase58(req.Admin)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	prop, err := s.MintAdditionalUnits(admin, property, req.Amount)
	if err != nil {
		respondOpErr(c, err)
		return
	}
	c.JSON(http.StatusOK, respProperty(prop))
}

func (s *CrowdEstate) updateProperty(c *gin.Context) {
	req := schema.ReqUpdateProperty{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	property, err := solana.PublicKeyFromBase58(c.Param("address"))
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	admin, err := solana.PublicKeyFromBase58(req.Admin)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	prop, err := s.UpdateProperty(admin, property, req.Name, req.Symbol)
	if err != nil {
		respondOpErr(c, err)
		return
	}
	c.JSON(http.StatusOK, respProperty(prop))
}

func (s *CrowdEstate) closeProperty(c *gin.Context) {
	req := schema.ReqCloseProperty{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	property, err := solana.PublicKeyFromBase58(c.Param("address"))
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	admin, err := solana.PublicKeyFromBase58(req.Admin)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.CloseProperty(admin, property); err != nil {
		respondOpErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"closed": property.String()})
}

func (s *CrowdEstate) invest(c *gin.Context) {
	req := schema.ReqInvest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	property, err := solana.PublicKeyFromBase58(c.Param("address"))
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	investor, err := solana.PublicKeyFromBase58(req.Investor)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	inv, err := s.Invest(investor, property, req.PaymentAmount)
	if err != nil {
		respondOpErr(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (s *CrowdEstate) withdraw(c *gin.Context) {
	req := schema.ReqWithdraw{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	property, err := solana.PublicKeyFromBase58(c.Param("address"))
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	investor, err := solana.PublicKeyFromBase58(req.Investor)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	admin, err := solana.PublicKeyFromBase58(req.Admin)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	refund, err := s.Withdraw(investor, admin, property)
	if err != nil {
		respondOpErr(c, err)
		return
	}
	c.JSON(http.StatusOK, schema.RespWithdraw{
		Property: property.String(),
		Investor: investor.String(),
		Refund:   refund,
	})
}

func (s *CrowdEstate) listInvestments(c *gin.Context) {
	rows, err := s.wdb.GetInvestmentsByInvestor(c.Param("investor"))
	if err != nil {
		internalErrorResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *CrowdEstate) getInvestment(c *gin.Context) {
	property, err := solana.PublicKeyFromBase58(c.Param("property"))
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	investor, err := solana.PublicKeyFromBase58(c.Param("investor"))
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	inv, err := s.GetInvestment(investor, property)
	if err != nil {
		respondOpErr(c, err)
		return
	}
	prop, err := s.GetProperty(property)
	if err != nil {
		respondOpErr(c, err)
		return
	}
	c.JSON(http.StatusOK, schema.RespInvestment{
		Investment:         inv,
		ClaimableDividends: s.ClaimableDividends(prop, inv),
	})
}

func (s *CrowdEstate) distributeDividends(c *gin.Context) {
	req := schema.ReqDistributeDividends{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	property, err := solana.PublicKeyFromBase58(c.Param("address"))
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	admin, err := solana.PublicKeyFromBase58(req.Admin)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	prop, err := s.DistributeDividends(admin, property, req.Amount)
	if err != nil {
		respondOpErr(c, err)
		return
	}
	c.JSON(http.StatusOK, respProperty(prop))
}

func (s *CrowdEstate) redeemDividends(c *gin.Context) {
	req := schema.ReqRedeemDividends{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	property, err := solana.PublicKeyFromBase58(c.Param("address"))
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	investor, err := solana.PublicKeyFromBase58(req.Investor)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	claimed, err := s.RedeemDividends(investor, property)
	if err != nil {
		respondOpErr(c, err)
		return
	}
	c.JSON(http.StatusOK, schema.RespRedeem{
		Property: property.String(),
		Investor: investor.String(),
		Claimed:  claimed,
	})
}

func (s *CrowdEstate) createProposal(c *gin.Context) {
	req := schema.ReqCreateProposal{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	proposer, err := solana.PublicKeyFromBase58(req.Proposer)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	property, err := solana.PublicKeyFromBase58(req.Property)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}

	var action schema.ProposalAction
	switch req.Kind {
	case schema.ActionKindChangeAdmin:
		newAdmin, err := solana.PublicKeyFromBase58(req.NewAdmin)
		if err != nil {
			errorResponse(c, schema.ErrInvalidNewAdmin.Error())
			return
		}
		action = schema.ChangeAdmin{NewAdmin: newAdmin}
	case schema.ActionKindMintUnits:
		action = schema.MintAdditionalUnits{Amount: req.Amount}
	default:
		errorResponse(c, schema.ErrInvalidProposalType.Error())
		return
	}

	pps, err := s.CreateProposal(proposer, property, req.Description, action)
	if err != nil {
		respondOpErr(c, err)
		return
	}
	c.JSON(http.StatusOK, pps)
}

func (s *CrowdEstate) getProposal(c *gin.Context) {
	addr, err := solana.PublicKeyFromBase58(c.Param("address"))
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	pps, err := s.GetProposal(addr)
	if err != nil {
		respondOpErr(c, err)
		return
	}
	c.JSON(http.StatusOK, pps)
}

func (s *CrowdEstate) listProposals(c *gin.Context) {
	rows, err := s.wdb.GetProposalsByProperty(c.Param("property"))
	if err != nil {
		internalErrorResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *CrowdEstate) vote(c *gin.Context) {
	req := schema.ReqVote{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	proposal, err := solana.PublicKeyFromBase58(c.Param("address"))
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	voter, err := solana.PublicKeyFromBase58(req.Voter)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	pps, err := s.Vote(voter, proposal, req.InFavor)
	if err != nil {
		respondOpErr(c, err)
		return
	}
	c.JSON(http.StatusOK, pps)
}

func (s *CrowdEstate) executeProposal(c *gin.Context) {
	req := schema.ReqExecuteProposal{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	proposal, err := solana.PublicKeyFromBase58(c.Param("address"))
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	caller, err := solana.PublicKeyFromBase58(req.Caller)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	pps, err := s.ExecuteProposal(caller, proposal)
	if err != nil {
		respondOpErr(c, err)
		return
	}
	c.JSON(http.StatusOK, pps)
}

func (s *CrowdEstate) getBalance(c *gin.Context) {
	mint, err := solana.PublicKeyFromBase58(c.Param("mint"))
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	owner, err := solana.PublicKeyFromBase58(c.Param("owner"))
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	bal, err := s.GetBalance(mint, owner)
	if err != nil {
		respondOpErr(c, err)
		return
	}
	c.JSON(http.StatusOK, schema.RespBalance{
		Mint:    mint.String(),
		Owner:   owner.String(),
		Balance: bal,
	})
}

func (s *CrowdEstate) getInfo(c *gin.Context) {
	c.JSON(http.StatusOK, s.cache.GetInfo())
}

func (s *CrowdEstate) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.cache.GetStats())
}

// airdrop mints dev-mode payment funds; registered only when the faucet flag
// is enabled.
func (s *CrowdEstate) airdrop(c *gin.Context) {
	req := schema.ReqAirdrop{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	owner, err := solana.PublicKeyFromBase58(req.Owner)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	faucet, err := schema.FaucetAuthority()
	if err != nil {
		internalErrorResponse(c, err.Error())
		return
	}
	var bal uint64
	err = s.store.Update(func(tx *rawdb.Txn) error {
		if err := s.ledger.MintTo(tx, s.paymentMint, owner, req.Amount, faucet); err != nil {
			return err
		}
		bal, err = s.ledger.Balance(tx, s.paymentMint, owner)
		return err
	})
	if err != nil {
		respondOpErr(c, err)
		return
	}
	c.JSON(http.StatusOK, schema.RespBalance{
		Mint:    s.paymentMint.String(),
		Owner:   owner.String(),
		Balance: bal,
	})
}

func respProperty(prop schema.Property) schema.RespProperty {
	return schema.RespProperty{
		Property:         prop,
		UnitPriceDisplay: schema.DisplayAmount(prop.UnitPrice),
	}
}

// respondOpErr maps a core error to the HTTP layer: missing records are 404,
// rejected operations are 400, anything else is 500.
func respondOpErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, schema.ErrNotExist) || errors.Is(err, schema.ErrNotFound):
		notFoundResponse(c, err.Error())
	case isDomainErr(err):
		errorResponse(c, err.Error())
	default:
		internalErrorResponse(c, err.Error())
	}
}

var domainErrs = []error{
	schema.ErrUnauthorized,
	schema.ErrInvalidTotalUnits,
	schema.ErrInvalidUnitPrice,
	schema.ErrInvalidName,
	schema.ErrInvalidTokenSymbol,
	schema.ErrPropertyClosed,
	schema.ErrPropertyExist,
	schema.ErrInsufficientAmount,
	schema.ErrNotEnoughUnits,
	schema.ErrOverflow,
	schema.ErrDivision,
	schema.ErrMultiplication,
	schema.ErrInvalidDividendsClaim,
	schema.ErrNoDividendsToClaim,
	schema.ErrDescriptionTooLong,
	schema.ErrInvalidNewAdmin,
	schema.ErrInvalidAdditionalUnits,
	schema.ErrProposalAlreadyExecuted,
	schema.ErrAlreadyVoted,
	schema.ErrProposalNotApproved,
	schema.ErrInvalidProposalType,
	schema.ErrInsufficientBalance,
	schema.ErrInvalidAuthority,
	schema.ErrMintExist,
	schema.ErrMintMismatch,
}

func isDomainErr(err error) bool {
	for _, domain := range domainErrs {
		if errors.Is(err, domain) {
			return true
		}
	}
	return false
}

func errorResponse(c *gin.Context, err string) {
	// client error
	c.JSON(http.StatusBadRequest, schema.RespErr{
		Err: err,
	})
}

func notFoundResponse(c *gin.Context, err string) {
	c.JSON(http.StatusNotFound, schema.RespErr{
		Err: err,
	})
}

func internalErrorResponse(c *gin.Context, err string) {
	c.JSON(http.StatusInternalServerError, schema.RespErr{
		Err: err,
	})
}
