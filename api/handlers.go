package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/oasisprotocol/deepspace/address"
	"github.com/oasisprotocol/deepspace/common"
	"github.com/oasisprotocol/deepspace/msg"
	"github.com/oasisprotocol/deepspace/tx"
)

// AddressResponse describes a decoded address and its encodings under every
// known prefix.
type AddressResponse struct {
	Prefix    string            `json:"prefix"`
	Hex       string            `json:"hex"`
	Encodings map[string]string `json:"encodings"`
}

// VoteHashResponse carries a vote hash, the rate exactly as it was hashed
// and the prevote that commits to it.
type VoteHashResponse struct {
	Hash         msg.VoteHash `json:"hash"`
	ExchangeRate common.Dec   `json:"exchange_rate"`
	Prevote      msg.Envelope `json:"prevote"`
}

// SignDocResponse carries the canonical sign doc. SignBytes is the same
// document as raw bytes, base64 encoded.
type SignDocResponse struct {
	SignDoc   json.RawMessage `json:"sign_doc"`
	SignBytes []byte          `json:"sign_bytes"`
}

// TxsRequest is a transaction request plus the signatures collected for it.
type TxsRequest struct {
	Request    json.RawMessage `json:"request"`
	Signatures []tx.Signature  `json:"signatures"`
}

// GetAddress decodes an address of any known prefix.
func (a *API) GetAddress(w http.ResponseWriter, r *http.Request) {
	prefix, raw, err := address.DecodeAny(chi.URLParam(r, "address"))
	if err != nil {
		ReplyWithError(w, badRequest(err))
		return
	}
	resp := AddressResponse{
		Prefix:    prefix,
		Hex:       raw.Hex(),
		Encodings: map[string]string{},
	}
	for _, p := range address.Prefixes {
		enc, err := address.Encode(raw, p)
		if err != nil {
			ReplyWithError(w, err)
			return
		}
		resp.Encodings[p] = enc
	}
	a.reply(w, r, resp)
}

// PostVoteHash computes the vote hash of an exchange rate vote. With
// ?sdk_precision=true the rate is first rendered with 18 fractional digits.
func (a *API) PostVoteHash(w http.ResponseWriter, r *http.Request) {
	sdkPrecision := false
	if v := r.URL.Query().Get("sdk_precision"); v != "" {
		var err error
		if sdkPrecision, err = strconv.ParseBool(v); err != nil {
			ReplyWithError(w, badRequest(fmt.Errorf("sdk_precision: %w", err)))
			return
		}
	}
	body, err := readBody(r)
	if err != nil {
		ReplyWithError(w, err)
		return
	}
	var vote msg.ExchangeRateVote
	if err := json.Unmarshal(body, &vote); err != nil {
		ReplyWithError(w, badRequest(err))
		return
	}
	if sdkPrecision {
		if vote.ExchangeRate, err = vote.ExchangeRate.WithPrecision(common.SDKPrecision); err != nil {
			ReplyWithError(w, badRequest(err))
			return
		}
	}
	if err := msg.Validate(vote); err != nil {
		ReplyWithError(w, badRequest(err))
		return
	}
	prevote := msg.NewPrevote(vote)
	a.reply(w, r, VoteHashResponse{
		Hash:         prevote.Hash,
		ExchangeRate: vote.ExchangeRate,
		Prevote:      msg.Envelope{Msg: prevote},
	})
}

// PostSignDoc encodes the sign doc of a transaction request.
func (a *API) PostSignDoc(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		ReplyWithError(w, err)
		return
	}
	req, err := tx.ParseRequest(body)
	if err != nil {
		ReplyWithError(w, badRequest(err))
		return
	}
	doc, err := req.SignDoc()
	if err != nil {
		ReplyWithError(w, badRequest(err))
		return
	}
	signBytes, err := doc.Bytes()
	if err != nil {
		ReplyWithError(w, badRequest(err))
		return
	}
	a.reply(w, r, SignDocResponse{SignDoc: signBytes, SignBytes: signBytes})
}

// PostTxs assembles the broadcastable envelope from a request and its
// signatures, in signer order.
func (a *API) PostTxs(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		ReplyWithError(w, err)
		return
	}
	var in TxsRequest
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		ReplyWithError(w, badRequest(err))
		return
	}
	req, err := tx.ParseRequest(in.Request)
	if err != nil {
		ReplyWithError(w, badRequest(err))
		return
	}
	// Encoding the sign doc validates the messages.
	if _, err := req.SignDoc(); err != nil {
		ReplyWithError(w, badRequest(err))
		return
	}
	stdTx := req.StdTx()
	for i, s := range in.Signatures {
		var pubKey []byte
		if s.PubKey != nil {
			pubKey = *s.PubKey
		}
		sig, err := tx.NewSignature(pubKey, s.Signature)
		if err != nil {
			ReplyWithError(w, badRequest(fmt.Errorf("signatures[%d]: %w", i, err)))
			return
		}
		stdTx.AddSignature(sig)
	}
	txBytes, err := tx.Tx{Family: a.family, StdTx: stdTx}.Bytes()
	if err != nil {
		ReplyWithError(w, badRequest(err))
		return
	}
	a.writeJSON(w, r, txBytes)
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, badRequest(err)
	}
	if len(body) > maxBodyBytes {
		return nil, badRequest(fmt.Errorf("body larger than %d bytes", maxBodyBytes))
	}
	return body, nil
}

func (a *API) reply(w http.ResponseWriter, r *http.Request, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		a.logger.Error("failed to encode response", "err", err, "endpoint", r.URL.Path)
		ReplyWithError(w, err)
		return
	}
	a.writeJSON(w, r, body)
}

func (a *API) writeJSON(w http.ResponseWriter, r *http.Request, body []byte) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		id, _ := RequestID(r.Context())
		a.logger.Warn("failed to write response", "err", err, "request_id", id)
	}
}
