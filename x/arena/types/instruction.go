package types

import (
	"fmt"
	"sort"

	"cosmossdk.io/errors"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Instruction names. The request discriminator is sha256("global:" + name)[:8].
const (
	InstructionCreateMatch       = "create_match"
	InstructionCreatePlayerState = "create_player_state"
	InstructionJoinMatch         = "join_match"
	InstructionStartRound        = "start_round"
	InstructionSubmitInput       = "submit_input"
	InstructionApplyDamage       = "apply_damage"
	InstructionEndRound          = "end_round"
	InstructionForfeit           = "forfeit"
	InstructionCancelMatch       = "cancel_match"
	InstructionCloseMatch        = "close_match"
	InstructionClosePlayerState  = "close_player_state"
	InstructionCreateDerby       = "create_derby"
	InstructionStartDerby        = "start_derby"
	InstructionSubmitDerbyInput  = "submit_derby_input"
	InstructionDerbyServerUpdate = "derby_server_update"
	InstructionCloseDerby        = "close_derby"
	InstructionCreateSession     = "create_session"
	InstructionRevokeSession     = "revoke_session"
)

// InstructionDiscriminator returns sha256("global:" + name)[:8].
func InstructionDiscriminator(name string) Discriminator {
	return hashDiscriminator("global", name)
}

// Request is one state transition submitted to the engine. Signer is the
// authenticated caller. Subject is the non-signing participant the
// instruction names, or the zero key when it names none.
type Request struct {
	Signer  solana.PublicKey `json:"signer"`
	Subject solana.PublicKey `json:"subject"`
	Data    []byte           `json:"data"`
}

// NewRequest encodes ix into a request envelope.
func NewRequest(signer, subject solana.PublicKey, ix Instruction) (Request, error) {
	data, err := EncodeInstruction(ix)
	if err != nil {
		return Request{}, err
	}
	return Request{Signer: signer, Subject: subject, Data: data}, nil
}

// Instruction is a decoded request payload.
type Instruction interface {
	Name() string
	writeArgs(w *recordWriter)
}

// EncodeInstruction serializes ix as discriminator ‖ little-endian arguments.
func EncodeInstruction(ix Instruction) ([]byte, error) {
	w := newRecordWriter(32, InstructionDiscriminator(ix.Name()))
	ix.writeArgs(w)
	if w.err != nil {
		return nil, errors.Wrapf(ErrInvalidInstruction, "%s: %s", ix.Name(), w.err)
	}
	return w.buf.Bytes(), nil
}

type instructionDecoder struct {
	name   string
	decode func(r *recordReader) (Instruction, error)
}

var instructionDecoders = map[Discriminator]instructionDecoder{}

func registerInstruction(name string, decode func(r *recordReader) (Instruction, error)) {
	instructionDecoders[InstructionDiscriminator(name)] = instructionDecoder{name: name, decode: decode}
}

// InstructionNames lists every instruction the engine accepts, sorted.
func InstructionNames() []string {
	names := make([]string, 0, len(instructionDecoders))
	for _, d := range instructionDecoders {
		names = append(names, d.name)
	}
	sort.Strings(names)
	return names
}

// DecodeInstruction parses request data. Unknown discriminators, short
// payloads and trailing bytes are rejected.
func DecodeInstruction(data []byte) (Instruction, error) {
	if len(data) < DiscriminatorSize {
		return nil, errors.Wrapf(ErrInvalidInstruction, "data too short: %d bytes", len(data))
	}
	var disc Discriminator
	copy(disc[:], data[:DiscriminatorSize])
	d, ok := instructionDecoders[disc]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidInstruction, "unknown discriminator %s", disc)
	}
	r := &recordReader{dec: bin.NewBinDecoder(data[DiscriminatorSize:])}
	ix, err := d.decode(r)
	if err == nil {
		err = r.check()
	}
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidInstruction, "%s: %s", d.name, err)
	}
	return ix, nil
}

// InstructionName returns the name behind the discriminator of data, or ""
// when the discriminator is unknown.
func InstructionName(data []byte) string {
	if len(data) < DiscriminatorSize {
		return ""
	}
	var disc Discriminator
	copy(disc[:], data[:DiscriminatorSize])
	return instructionDecoders[disc].name
}

// CreateMatch opens a match. Signer is player1, Subject the game server.
type CreateMatch struct {
	MatchID uint64 `json:"match_id"`
}

func (CreateMatch) Name() string { return InstructionCreateMatch }
func (ix CreateMatch) writeArgs(w *recordWriter) { w.u64(ix.MatchID) }

// CreatePlayerState opens the signer's input record for a match.
type CreatePlayerState struct {
	MatchID uint64 `json:"match_id"`
}

func (CreatePlayerState) Name() string { return InstructionCreatePlayerState }
func (ix CreatePlayerState) writeArgs(w *recordWriter) { w.u64(ix.MatchID) }

// JoinMatch seats Subject as player2.
type JoinMatch struct {
	MatchID uint64 `json:"match_id"`
}

func (JoinMatch) Name() string { return InstructionJoinMatch }
func (ix JoinMatch) writeArgs(w *recordWriter) { w.u64(ix.MatchID) }

type StartRound struct {
	MatchID uint64 `json:"match_id"`
}

func (StartRound) Name() string { return InstructionStartRound }
func (ix StartRound) writeArgs(w *recordWriter) { w.u64(ix.MatchID) }

// SubmitInput records Subject's input for a tick.
type SubmitInput struct {
	MatchID   uint64 `json:"match_id"`
	Tick      uint32 `json:"tick"`
	DX        int8   `json:"dx"`
	DY        int8   `json:"dy"`
	Attacking bool   `json:"attacking"`
}

func (SubmitInput) Name() string { return InstructionSubmitInput }

func (ix SubmitInput) writeArgs(w *recordWriter) {
	w.u64(ix.MatchID)
	w.u32(ix.Tick)
	w.i8(ix.DX)
	w.i8(ix.DY)
	w.boolean(ix.Attacking)
}

type ApplyDamage struct {
	MatchID    uint64 `json:"match_id"`
	TargetSlot Slot   `json:"target_slot"`
}

func (ApplyDamage) Name() string { return InstructionApplyDamage }

func (ix ApplyDamage) writeArgs(w *recordWriter) {
	w.u64(ix.MatchID)
	w.u8(uint8(ix.TargetSlot))
}

type EndRound struct {
	MatchID uint64 `json:"match_id"`
}

func (EndRound) Name() string { return InstructionEndRound }
func (ix EndRound) writeArgs(w *recordWriter) { w.u64(ix.MatchID) }

type Forfeit struct {
	MatchID       uint64 `json:"match_id"`
	ForfeiterSlot Slot   `json:"forfeiter_slot"`
}

func (Forfeit) Name() string { return InstructionForfeit }

func (ix Forfeit) writeArgs(w *recordWriter) {
	w.u64(ix.MatchID)
	w.u8(uint8(ix.ForfeiterSlot))
}

type CancelMatch struct {
	MatchID uint64 `json:"match_id"`
}

func (CancelMatch) Name() string { return InstructionCancelMatch }
func (ix CancelMatch) writeArgs(w *recordWriter) { w.u64(ix.MatchID) }

type CloseMatch struct {
	MatchID uint64 `json:"match_id"`
}

func (CloseMatch) Name() string { return InstructionCloseMatch }
func (ix CloseMatch) writeArgs(w *recordWriter) { w.u64(ix.MatchID) }

// ClosePlayerState deletes Subject's input record for a completed match.
type ClosePlayerState struct {
	MatchID uint64 `json:"match_id"`
}

func (ClosePlayerState) Name() string { return InstructionClosePlayerState }
func (ix ClosePlayerState) writeArgs(w *recordWriter) { w.u64(ix.MatchID) }

// CreateDerby opens a race. Signer is the player, Subject the game server.
type CreateDerby struct {
	RaceID  uint64 `json:"race_id"`
	VRFSeed Seed   `json:"vrf_seed"`
}

func (CreateDerby) Name() string { return InstructionCreateDerby }

func (ix CreateDerby) writeArgs(w *recordWriter) {
	w.u64(ix.RaceID)
	w.bytes(ix.VRFSeed[:])
}

type StartDerby struct {
	RaceID uint64 `json:"race_id"`
}

func (StartDerby) Name() string { return InstructionStartDerby }
func (ix StartDerby) writeArgs(w *recordWriter) { w.u64(ix.RaceID) }

// SubmitDerbyInput advances the race clock on behalf of Subject.
type SubmitDerbyInput struct {
	RaceID uint64 `json:"race_id"`
	Tick   uint32 `json:"tick"`
	DX     int8   `json:"dx"`
	DY     int8   `json:"dy"`
}

func (SubmitDerbyInput) Name() string { return InstructionSubmitDerbyInput }

func (ix SubmitDerbyInput) writeArgs(w *recordWriter) {
	w.u64(ix.RaceID)
	w.u32(ix.Tick)
	w.i8(ix.DX)
	w.i8(ix.DY)
}

type DerbyServerUpdate struct {
	RaceID uint64      `json:"race_id"`
	Action DerbyAction `json:"action"`
}

func (DerbyServerUpdate) Name() string { return InstructionDerbyServerUpdate }

func (ix DerbyServerUpdate) writeArgs(w *recordWriter) {
	w.u64(ix.RaceID)
	if ix.Action == nil {
		w.err = fmt.Errorf("missing derby action")
		return
	}
	w.u8(uint8(ix.Action.Tag()))
	if arg, ok := ix.Action.argument(); ok {
		w.u8(arg)
	}
}

type CloseDerby struct {
	RaceID uint64 `json:"race_id"`
}

func (CloseDerby) Name() string { return InstructionCloseDerby }
func (ix CloseDerby) writeArgs(w *recordWriter) { w.u64(ix.RaceID) }

// CreateSession lets Subject act for the signer until ValidUntil.
type CreateSession struct {
	ValidUntil int64 `json:"valid_until"`
}

func (CreateSession) Name() string { return InstructionCreateSession }
func (ix CreateSession) writeArgs(w *recordWriter) { w.i64(ix.ValidUntil) }

// RevokeSession deletes the signer's session for Subject.
type RevokeSession struct{}

func (RevokeSession) Name() string { return InstructionRevokeSession }
func (RevokeSession) writeArgs(w *recordWriter) {}

func readSlot(r *recordReader) Slot {
	return Slot(r.u8())
}

func init() {
	registerInstruction(InstructionCreateMatch, func(r *recordReader) (Instruction, error) {
		return CreateMatch{MatchID: r.u64()}, nil
	})
	registerInstruction(InstructionCreatePlayerState, func(r *recordReader) (Instruction, error) {
		return CreatePlayerState{MatchID: r.u64()}, nil
	})
	registerInstruction(InstructionJoinMatch, func(r *recordReader) (Instruction, error) {
		return JoinMatch{MatchID: r.u64()}, nil
	})
	registerInstruction(InstructionStartRound, func(r *recordReader) (Instruction, error) {
		return StartRound{MatchID: r.u64()}, nil
	})
	registerInstruction(InstructionSubmitInput, func(r *recordReader) (Instruction, error) {
		return SubmitInput{MatchID: r.u64(), Tick: r.u32(), DX: r.i8(), DY: r.i8(), Attacking: r.boolean()}, nil
	})
	registerInstruction(InstructionApplyDamage, func(r *recordReader) (Instruction, error) {
		return ApplyDamage{MatchID: r.u64(), TargetSlot: readSlot(r)}, nil
	})
	registerInstruction(InstructionEndRound, func(r *recordReader) (Instruction, error) {
		return EndRound{MatchID: r.u64()}, nil
	})
	registerInstruction(InstructionForfeit, func(r *recordReader) (Instruction, error) {
		return Forfeit{MatchID: r.u64(), ForfeiterSlot: readSlot(r)}, nil
	})
	registerInstruction(InstructionCancelMatch, func(r *recordReader) (Instruction, error) {
		return CancelMatch{MatchID: r.u64()}, nil
	})
	registerInstruction(InstructionCloseMatch, func(r *recordReader) (Instruction, error) {
		return CloseMatch{MatchID: r.u64()}, nil
	})
	registerInstruction(InstructionClosePlayerState, func(r *recordReader) (Instruction, error) {
		return ClosePlayerState{MatchID: r.u64()}, nil
	})
	registerInstruction(InstructionCreateDerby, func(r *recordReader) (Instruction, error) {
		ix := CreateDerby{RaceID: r.u64()}
		copy(ix.VRFSeed[:], r.bytes(len(ix.VRFSeed)))
		return ix, nil
	})
	registerInstruction(InstructionStartDerby, func(r *recordReader) (Instruction, error) {
		return StartDerby{RaceID: r.u64()}, nil
	})
	registerInstruction(InstructionSubmitDerbyInput, func(r *recordReader) (Instruction, error) {
		return SubmitDerbyInput{RaceID: r.u64(), Tick: r.u32(), DX: r.i8(), DY: r.i8()}, nil
	})
	registerInstruction(InstructionDerbyServerUpdate, func(r *recordReader) (Instruction, error) {
		ix := DerbyServerUpdate{RaceID: r.u64()}
		tag := DerbyActionTag(r.u8())
		if r.err != nil {
			return nil, r.err
		}
		action, err := readDerbyAction(tag, r)
		if err != nil {
			return nil, err
		}
		ix.Action = action
		return ix, nil
	})
	registerInstruction(InstructionCloseDerby, func(r *recordReader) (Instruction, error) {
		return CloseDerby{RaceID: r.u64()}, nil
	})
	registerInstruction(InstructionCreateSession, func(r *recordReader) (Instruction, error) {
		return CreateSession{ValidUntil: r.i64()}, nil
	})
	registerInstruction(InstructionRevokeSession, func(r *recordReader) (Instruction, error) {
		return RevokeSession{}, nil
	})
}
