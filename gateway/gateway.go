/*
Package gateway is the stateless admission layer ("System 1") in front of
the ledger engine.

PURPOSE:
  Two admission checks run in order, short-circuiting on the first failure:

    1. Issuer-range eligibility: the card number must start with the
       accepted issuer prefix ("4" by default).
    2. Amount positivity: the requested amount must be strictly positive.

  A gateway rejection produces NO transaction record; only requests the
  gateway forwards can appear in the log. On admission the request is
  forwarded to the engine unchanged and its result returned verbatim.
*/
package gateway

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/warp/card-engine/ledger"
)

// DefaultIssuerPrefix is the accepted card range in the reference policy.
const DefaultIssuerPrefix = "4"

// Processor is the downstream stage a gateway forwards admitted requests to.
type Processor interface {
	Process(ctx context.Context, req ledger.Request) (*ledger.Transaction, error)
}

// Gateway pre-validates requests before they reach the engine.
type Gateway struct {
	engine Processor
	prefix string
	logger *logrus.Logger
}

// New constructs a Gateway. An empty issuerPrefix falls back to
// DefaultIssuerPrefix.
func New(engine Processor, issuerPrefix string, logger *logrus.Logger) *Gateway {
	if issuerPrefix == "" {
		issuerPrefix = DefaultIssuerPrefix
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Gateway{engine: engine, prefix: issuerPrefix, logger: logger}
}

// Submit runs the admission checks and forwards to the engine. Rejections
// return a sentinel error and never touch the ledger.
func (g *Gateway) Submit(ctx context.Context, req ledger.Request) (*ledger.Transaction, error) {
	if !strings.HasPrefix(req.CardNumber, g.prefix) {
		g.logger.WithField("prefix", g.prefix).Warn("gateway rejected card range")
		return nil, ledger.ErrCardNotSupported
	}
	if !req.Amount.IsPositive() {
		g.logger.WithField("amount", req.Amount.String()).Warn("gateway rejected non-positive amount")
		return nil, ledger.ErrNonPositiveAmount
	}
	return g.engine.Process(ctx, req)
}
