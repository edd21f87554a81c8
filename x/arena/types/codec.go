package types

import (
	"bytes"
	"crypto/sha256"
	"encoding"
	"encoding/binary"
	"encoding/json"
	"fmt"

	collcodec "cosmossdk.io/collections/codec"
	"cosmossdk.io/errors"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// DiscriminatorSize is the length of the type tag that prefixes records and requests.
const DiscriminatorSize = 8

// Encoded record sizes, discriminator included.
const (
	ArenaMatchSize   = 182
	PlayerStateSize  = 63
	DerbyRaceSize    = 150
	SessionTokenSize = 88
)

// Record names hashed into account discriminators.
const (
	ArenaMatchRecordName   = "ArenaMatchState"
	PlayerStateRecordName  = "PlayerState"
	DerbyRaceRecordName    = "DerbyRaceState"
	SessionTokenRecordName = "SessionToken"
)

// Discriminator is the 8 byte type tag of a record or request.
type Discriminator [DiscriminatorSize]byte

func (d Discriminator) String() string {
	return fmt.Sprintf("%x", d[:])
}

func hashDiscriminator(namespace, name string) Discriminator {
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	var d Discriminator
	copy(d[:], sum[:DiscriminatorSize])
	return d
}

// AccountDiscriminator returns sha256("account:" + name)[:8].
func AccountDiscriminator(name string) Discriminator {
	return hashDiscriminator("account", name)
}

var (
	ArenaMatchDiscriminator   = AccountDiscriminator(ArenaMatchRecordName)
	PlayerStateDiscriminator  = AccountDiscriminator(PlayerStateRecordName)
	DerbyRaceDiscriminator    = AccountDiscriminator(DerbyRaceRecordName)
	SessionTokenDiscriminator = AccountDiscriminator(SessionTokenRecordName)
)

// recordWriter keeps the first encoder error so field writes can be chained.
type recordWriter struct {
	buf *bytes.Buffer
	enc *bin.Encoder
	err error
}

func newRecordWriter(size int, disc Discriminator) *recordWriter {
	buf := bytes.NewBuffer(make([]byte, 0, size))
	w := &recordWriter{buf: buf, enc: bin.NewBinEncoder(buf)}
	w.bytes(disc[:])
	return w
}

func (w *recordWriter) u8(v uint8) {
	if w.err == nil {
		w.err = w.enc.WriteUint8(v)
	}
}

func (w *recordWriter) i8(v int8) {
	if w.err == nil {
		w.err = w.enc.WriteInt8(v)
	}
}

func (w *recordWriter) boolean(v bool) {
	if v {
		w.u8(1)
	} else {
		w.u8(0)
	}
}

func (w *recordWriter) u16(v uint16) {
	if w.err == nil {
		w.err = w.enc.WriteUint16(v, binary.LittleEndian)
	}
}

func (w *recordWriter) u32(v uint32) {
	if w.err == nil {
		w.err = w.enc.WriteUint32(v, binary.LittleEndian)
	}
}

func (w *recordWriter) u64(v uint64) {
	if w.err == nil {
		w.err = w.enc.WriteUint64(v, binary.LittleEndian)
	}
}

func (w *recordWriter) i64(v int64) {
	if w.err == nil {
		w.err = w.enc.WriteInt64(v, binary.LittleEndian)
	}
}

func (w *recordWriter) bytes(b []byte) {
	if w.err == nil {
		w.err = w.enc.WriteBytes(b, false)
	}
}

func (w *recordWriter) key(k solana.PublicKey) {
	w.bytes(k[:])
}

func (w *recordWriter) finish(size int) ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if w.buf.Len() != size {
		return nil, fmt.Errorf("encoded %d bytes, expected %d", w.buf.Len(), size)
	}
	return w.buf.Bytes(), nil
}

// recordReader mirrors recordWriter. A failed read leaves zero values behind and
// the first error is reported by finish.
type recordReader struct {
	dec *bin.Decoder
	err error
}

func newRecordReader(data []byte, size int, disc Discriminator, name string) (*recordReader, error) {
	if len(data) != size {
		return nil, errors.Wrapf(ErrInvalidAccountData, "%s: got %d bytes, expected %d", name, len(data), size)
	}
	if !bytes.Equal(data[:DiscriminatorSize], disc[:]) {
		return nil, errors.Wrapf(ErrInvalidAccountData, "%s: discriminator %x does not match %s", name, data[:DiscriminatorSize], disc)
	}
	r := &recordReader{dec: bin.NewBinDecoder(data)}
	r.bytes(DiscriminatorSize)
	return r, nil
}

func (r *recordReader) u8() uint8 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint8()
	r.err = err
	return v
}

func (r *recordReader) i8() int8 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadInt8()
	r.err = err
	return v
}

func (r *recordReader) boolean() bool {
	v := r.u8()
	if r.err == nil && v > 1 {
		r.err = fmt.Errorf("invalid bool byte %d", v)
	}
	return v == 1
}

func (r *recordReader) u16() uint16 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint16(binary.LittleEndian)
	r.err = err
	return v
}

func (r *recordReader) u32() uint32 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint32(binary.LittleEndian)
	r.err = err
	return v
}

func (r *recordReader) u64() uint64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint64(binary.LittleEndian)
	r.err = err
	return v
}

func (r *recordReader) i64() int64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadInt64(binary.LittleEndian)
	r.err = err
	return v
}

func (r *recordReader) bytes(n int) []byte {
	if r.err != nil {
		return make([]byte, n)
	}
	v, err := r.dec.ReadNBytes(n)
	r.err = err
	if err != nil {
		return make([]byte, n)
	}
	return v
}

func (r *recordReader) key() solana.PublicKey {
	return solana.PublicKeyFromBytes(r.bytes(solana.PublicKeyLength))
}

// check reports the first read error, or leftover input once every field was read.
func (r *recordReader) check() error {
	if r.err == nil && r.dec.Remaining() != 0 {
		r.err = fmt.Errorf("%d trailing bytes", r.dec.Remaining())
	}
	return r.err
}

func (r *recordReader) finish(name string) error {
	if err := r.check(); err != nil {
		return errors.Wrapf(ErrInvalidAccountData, "%s: %s", name, err)
	}
	return nil
}

func (m ArenaMatch) MarshalBinary() ([]byte, error) {
	w := newRecordWriter(ArenaMatchSize, ArenaMatchDiscriminator)
	w.u64(m.MatchID)
	w.key(m.GameServer)
	w.key(m.Player1)
	w.key(m.Player2)
	w.u8(uint8(m.Status))
	w.u8(m.CurrentRound)
	w.u8(m.Player1RoundsWon)
	w.u8(m.Player2RoundsWon)
	w.u8(m.Player1HP)
	w.u8(m.Player2HP)
	w.u32(m.CurrentTick)
	w.u32(m.RoundStartTick)
	w.u32(m.LastP1DamageTick)
	w.u32(m.LastP2DamageTick)
	w.key(m.Winner)
	w.i64(m.CreatedAt)
	w.i64(m.SettledAt)
	return w.finish(ArenaMatchSize)
}

func (m *ArenaMatch) UnmarshalBinary(data []byte) error {
	r, err := newRecordReader(data, ArenaMatchSize, ArenaMatchDiscriminator, ArenaMatchRecordName)
	if err != nil {
		return err
	}
	var out ArenaMatch
	out.MatchID = r.u64()
	out.GameServer = r.key()
	out.Player1 = r.key()
	out.Player2 = r.key()
	out.Status = MatchStatus(r.u8())
	out.CurrentRound = r.u8()
	out.Player1RoundsWon = r.u8()
	out.Player2RoundsWon = r.u8()
	out.Player1HP = r.u8()
	out.Player2HP = r.u8()
	out.CurrentTick = r.u32()
	out.RoundStartTick = r.u32()
	out.LastP1DamageTick = r.u32()
	out.LastP2DamageTick = r.u32()
	out.Winner = r.key()
	out.CreatedAt = r.i64()
	out.SettledAt = r.i64()
	if err := r.finish(ArenaMatchRecordName); err != nil {
		return err
	}
	if !out.Status.IsValid() {
		return errors.Wrapf(ErrInvalidAccountData, "%s: unknown status %d", ArenaMatchRecordName, out.Status)
	}
	*m = out
	return nil
}

func (p PlayerState) MarshalBinary() ([]byte, error) {
	w := newRecordWriter(PlayerStateSize, PlayerStateDiscriminator)
	w.u64(p.MatchID)
	w.key(p.Player)
	w.i8(p.DX)
	w.i8(p.DY)
	w.boolean(p.Attacking)
	w.u32(p.LastTick)
	w.u64(p.InputCount)
	return w.finish(PlayerStateSize)
}

func (p *PlayerState) UnmarshalBinary(data []byte) error {
	r, err := newRecordReader(data, PlayerStateSize, PlayerStateDiscriminator, PlayerStateRecordName)
	if err != nil {
		return err
	}
	var out PlayerState
	out.MatchID = r.u64()
	out.Player = r.key()
	out.DX = r.i8()
	out.DY = r.i8()
	out.Attacking = r.boolean()
	out.LastTick = r.u32()
	out.InputCount = r.u64()
	if err := r.finish(PlayerStateRecordName); err != nil {
		return err
	}
	*p = out
	return nil
}

func (d DerbyRace) MarshalBinary() ([]byte, error) {
	w := newRecordWriter(DerbyRaceSize, DerbyRaceDiscriminator)
	w.u64(d.RaceID)
	w.key(d.GameServer)
	w.key(d.Player)
	w.bytes(d.VRFSeed[:])
	w.u8(uint8(d.Status))
	w.u32(d.CurrentTick)
	w.u8(d.CurrentLap)
	w.u8(uint8(d.CheckpointsPassed))
	w.u16(d.Collisions)
	w.u8(d.GoldCollected)
	w.u8(d.BoostsCollected)
	w.u16(uint16(d.GoldBitmask))
	w.u8(uint8(d.BoostBitmask))
	w.u32(d.BoostEndTick)
	w.u32(d.FinishTick)
	w.i64(d.CreatedAt)
	w.i64(d.SettledAt)
	return w.finish(DerbyRaceSize)
}

func (d *DerbyRace) UnmarshalBinary(data []byte) error {
	r, err := newRecordReader(data, DerbyRaceSize, DerbyRaceDiscriminator, DerbyRaceRecordName)
	if err != nil {
		return err
	}
	var out DerbyRace
	out.RaceID = r.u64()
	out.GameServer = r.key()
	out.Player = r.key()
	copy(out.VRFSeed[:], r.bytes(len(out.VRFSeed)))
	out.Status = DerbyStatus(r.u8())
	out.CurrentTick = r.u32()
	out.CurrentLap = r.u8()
	out.CheckpointsPassed = Bits8(r.u8())
	out.Collisions = r.u16()
	out.GoldCollected = r.u8()
	out.BoostsCollected = r.u8()
	out.GoldBitmask = Bits16(r.u16())
	out.BoostBitmask = Bits8(r.u8())
	out.BoostEndTick = r.u32()
	out.FinishTick = r.u32()
	out.CreatedAt = r.i64()
	out.SettledAt = r.i64()
	if err := r.finish(DerbyRaceRecordName); err != nil {
		return err
	}
	if !out.Status.IsValid() {
		return errors.Wrapf(ErrInvalidAccountData, "%s: unknown status %d", DerbyRaceRecordName, out.Status)
	}
	*d = out
	return nil
}

func (s SessionToken) MarshalBinary() ([]byte, error) {
	w := newRecordWriter(SessionTokenSize, SessionTokenDiscriminator)
	w.key(s.Authority)
	w.key(s.Signer)
	w.i64(s.ValidUntil)
	w.i64(s.CreatedAt)
	return w.finish(SessionTokenSize)
}

func (s *SessionToken) UnmarshalBinary(data []byte) error {
	r, err := newRecordReader(data, SessionTokenSize, SessionTokenDiscriminator, SessionTokenRecordName)
	if err != nil {
		return err
	}
	var out SessionToken
	out.Authority = r.key()
	out.Signer = r.key()
	out.ValidUntil = r.i64()
	out.CreatedAt = r.i64()
	if err := r.finish(SessionTokenRecordName); err != nil {
		return err
	}
	*s = out
	return nil
}

// BinaryRecord is implemented by pointers to the fixed-layout record types.
type BinaryRecord[T any] interface {
	*T
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

type recordValueCodec[T any, PT BinaryRecord[T]] struct {
	name string
}

// NewRecordCodec returns a collections value codec that stores T in its
// fixed binary layout and renders it as JSON in genesis and queries.
func NewRecordCodec[T any, PT BinaryRecord[T]](name string) collcodec.ValueCodec[T] {
	return recordValueCodec[T, PT]{name: name}
}

func (c recordValueCodec[T, PT]) Encode(value T) ([]byte, error) {
	return PT(&value).MarshalBinary()
}

func (c recordValueCodec[T, PT]) Decode(b []byte) (T, error) {
	var value T
	if err := PT(&value).UnmarshalBinary(b); err != nil {
		return value, err
	}
	return value, nil
}

func (c recordValueCodec[T, PT]) EncodeJSON(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (c recordValueCodec[T, PT]) DecodeJSON(b []byte) (T, error) {
	var value T
	err := json.Unmarshal(b, &value)
	return value, err
}

func (c recordValueCodec[T, PT]) Stringify(value T) string {
	return fmt.Sprintf("%+v", value)
}

func (c recordValueCodec[T, PT]) ValueType() string {
	return ModuleName + "/" + c.name
}
