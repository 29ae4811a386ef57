package sdk

import (
	"errors"
	"fmt"

	"github.com/marcelofeitoza/crowd-estate/schema"
	"gopkg.in/h2non/gentleman.v2"
	"gopkg.in/h2non/gentleman.v2/plugins/body"
)

type Client struct {
	cli *gentleman.Client
}

func New(url string) *Client {
	return &Client{
		cli: gentleman.New().URL(url),
	}
}

func (c *Client) CreateProperty(req schema.ReqCreateProperty) (schema.RespProperty, error) {
	prop := schema.RespProperty{}
	err := c.post("/property", req, &prop)
	return prop, err
}

func (c *Client) GetProperty(address string) (schema.RespProperty, error) {
	prop := schema.RespProperty{}
	err := c.get(fmt.Sprintf("/property/%s", address), &prop)
	return prop, err
}

func (c *Client) GetProperties() ([]schema.PropertyIndex, error) {
	rows := make([]schema.PropertyIndex, 0)
	err := c.get("/properties", &rows)
	return rows, err
}

func (c *Client) MintUnits(property string, req schema.ReqMintUnits) (schema.RespProperty, error) {
	prop := schema.RespProperty{}
	err := c.post(fmt.Sprintf("/property/%s/mint", property), req, &prop)
	return prop, err
}

func (c *Client) UpdateProperty(property string, req schema.ReqUpdateProperty) (schema.RespProperty, error) {
	prop := schema.RespProperty{}
	err := c.put(fmt.Sprintf("/property/%s", property), req, &prop)
	return prop, err
}

func (c *Client) CloseProperty(property string, req schema.ReqCloseProperty) error {
	r := c.cli.Delete()
	r.Path(fmt.Sprintf("/property/%s", property))
	r.Use(body.JSON(req))
	resp, err := r.Send()
	if err != nil {
		return err
	}
	defer resp.Close()
	if !resp.Ok {
		return respError(resp)
	}
	return nil
}

func (c *Client) Invest(property string, req schema.ReqInvest) (schema.Investment, error) {
	inv := schema.Investment{}
	err := c.post(fmt.Sprintf("/property/%s/invest", property), req, &inv)
	return inv, err
}

func (c *Client) Withdraw(property string, req schema.ReqWithdraw) (schema.RespWithdraw, error) {
	wd := schema.RespWithdraw{}
	err := c.post(fmt.Sprintf("/property/%s/withdraw", property), req, &wd)
	return wd, err
}

func (c *Client) GetInvestments(investor string) ([]schema.InvestmentIndex, error) {
	rows := make([]schema.InvestmentIndex, 0)
	err := c.get(fmt.Sprintf("/investments/%s", investor), &rows)
	return rows, err
}

func (c *Client) GetInvestment(property, investor string) (schema.RespInvestment, error) {
	inv := schema.RespInvestment{}
	err := c.get(fmt.Sprintf("/investment/%s/%s", property, investor), &inv)
	return inv, err
}

func (c *Client) DistributeDividends(property string, req schema.ReqDistributeDividends) (schema.RespProperty, error) {
	prop := schema.RespProperty{}
	err := c.post(fmt.Sprintf("/property/%s/dividends", property), req, &prop)
	return prop, err
}

func (c *Client) RedeemDividends(property string, req schema.ReqRedeemDividends) (schema.RespRedeem, error) {
	rd := schema.RespRedeem{}
	err := c.post(fmt.Sprintf("/property/%s/redeem", property), req, &rd)
	return rd, err
}

func (c *Client) CreateProposal(req schema.ReqCreateProposal) (schema.Proposal, error) {
	pps := schema.Proposal{}
	err := c.post("/proposal", req, &pps)
	return pps, err
}

func (c *Client) GetProposal(address string) (schema.Proposal, error) {
	pps := schema.Proposal{}
	err := c.get(fmt.Sprintf("/proposal/%s", address), &pps)
	return pps, err
}

func (c *Client) GetProposals(property string) ([]schema.ProposalIndex, error) {
	rows := make([]schema.ProposalIndex, 0)
	err := c.get(fmt.Sprintf("/proposals/%s", property), &rows)
	return rows, err
}

func (c *Client) Vote(proposal string, req schema.ReqVote) (schema.Proposal, error) {
	pps := schema.Proposal{}
	err := c.post(fmt.Sprintf("/proposal/%s/vote", proposal), req, &pps)
	return pps, err
}

func (c *Client) ExecuteProposal(proposal string, req schema.ReqExecuteProposal) (schema.Proposal, error) {
	pps := schema.Proposal{}
	err := c.post(fmt.Sprintf("/proposal/%s/execute", proposal), req, &pps)
	return pps, err
}

func (c *Client) GetBalance(mint, owner string) (schema.RespBalance, error) {
	bal := schema.RespBalance{}
	err := c.get(fmt.Sprintf("/balance/%s/%s", mint, owner), &bal)
	return bal, err
}

func (c *Client) GetInfo() (schema.PlatformInfo, error) {
	info := schema.PlatformInfo{}
	err := c.get("/info", &info)
	return info, err
}

func (c *Client) GetStats() (schema.PlatformStats, error) {
	stats := schema.PlatformStats{}
	err := c.get("/stats", &stats)
	return stats, err
}

// Airdrop only succeeds against deployments started with the faucet enabled.
func (c *Client) Airdrop(req schema.ReqAirdrop) (schema.RespBalance, error) {
	bal := schema.RespBalance{}
	err := c.post("/airdrop", req, &bal)
	return bal, err
}

func (c *Client) get(path string, out interface{}) error {
	req := c.cli.Get()
	req.Path(path)
	resp, err := req.Send()
	if err != nil {
		return err
	}
	defer resp.Close()
	if !resp.Ok {
		return respError(resp)
	}
	return resp.JSON(out)
}

func (c *Client) post(path string, in, out interface{}) error {
	req := c.cli.Post()
	req.Path(path)
	req.Use(body.JSON(in))
	resp, err := req.Send()
	if err != nil {
		return err
	}
	defer resp.Close()
	if !resp.Ok {
		return respError(resp)
	}
	return resp.JSON(out)
}

func (c *Client) put(path string, in, out interface{}) error {
	req := c.cli.Put()
	req.Path(path)
	req.Use(body.JSON(in))
	resp, err := req.Send()
	if err != nil {
		return err
	}
	defer resp.Close()
	if !resp.Ok {
		return respError(resp)
	}
	return resp.JSON(out)
}

func respError(resp *gentleman.Response) error {
	respErr := schema.RespErr{}
	if err := resp.JSON(&respErr); err == nil && respErr.Err != "" {
		return errors.New(respErr.Err)
	}
	return fmt.Errorf("resp failed: %s", resp.String())
}
