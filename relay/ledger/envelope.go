package ledger

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	"github.com/arenaledger/arena-node/x/arena/types"
)

// Envelope is the JSON form of a request used by the HTTP API and request
// logs. Data is hex; DataB58 carries the same bytes in base58 as Solana
// tooling prints them. Exactly one of the two must be set.
type Envelope struct {
	Time    int64  `json:"time,omitempty"`
	Signer  string `json:"signer"`
	Subject string `json:"subject,omitempty"`
	Data    string `json:"data,omitempty"`
	DataB58 string `json:"data_b58,omitempty"`
}

// BlockTime returns Time as a UTC instant.
func (e Envelope) BlockTime() time.Time {
	return time.Unix(e.Time, 0).UTC()
}

// Request decodes the envelope keys and payload.
func (e Envelope) Request() (types.Request, error) {
	var req types.Request

	signer, err := solana.PublicKeyFromBase58(e.Signer)
	if err != nil {
		return req, fmt.Errorf("invalid signer %q: %w", e.Signer, err)
	}
	req.Signer = signer

	if e.Subject != "" {
		subject, err := solana.PublicKeyFromBase58(e.Subject)
		if err != nil {
			return req, fmt.Errorf("invalid subject %q: %w", e.Subject, err)
		}
		req.Subject = subject
	}

	switch {
	case e.Data != "" && e.DataB58 != "":
		return req, errors.New("only one of data and data_b58 may be set")
	case e.Data != "":
		req.Data, err = hex.DecodeString(strings.TrimPrefix(e.Data, "0x"))
		if err != nil {
			return req, fmt.Errorf("invalid hex data: %w", err)
		}
	case e.DataB58 != "":
		req.Data, err = base58.Decode(e.DataB58)
		if err != nil {
			return req, fmt.Errorf("invalid base58 data: %w", err)
		}
	default:
		return req, errors.New("request data is empty")
	}
	return req, nil
}

// NewEnvelope renders req with hex data.
func NewEnvelope(t time.Time, req types.Request) Envelope {
	e := Envelope{
		Time:   t.Unix(),
		Signer: req.Signer.String(),
		Data:   hex.EncodeToString(req.Data),
	}
	if !req.Subject.IsZero() {
		e.Subject = req.Subject.String()
	}
	return e
}
