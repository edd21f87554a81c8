package types

import (
	"encoding/json"
	"fmt"
)

// DerbyActionTag is the wire tag of a derby server update.
type DerbyActionTag uint8

const (
	DerbyActionRecordCollision DerbyActionTag = iota
	DerbyActionCollectGold
	DerbyActionCollectBoost
	DerbyActionPassCheckpoint
	DerbyActionCompleteLap
	DerbyActionFinishRace
)

var derbyActionNames = map[DerbyActionTag]string{
	DerbyActionRecordCollision: "record_collision",
	DerbyActionCollectGold:     "collect_gold",
	DerbyActionCollectBoost:    "collect_boost",
	DerbyActionPassCheckpoint:  "pass_checkpoint",
	DerbyActionCompleteLap:     "complete_lap",
	DerbyActionFinishRace:      "finish_race",
}

func (t DerbyActionTag) String() string {
	if name, ok := derbyActionNames[t]; ok {
		return name
	}
	return fmt.Sprintf("DerbyActionTag(%d)", uint8(t))
}

// DerbyAction is one of RecordCollision, CollectGold, CollectBoost,
// PassCheckpoint, CompleteLap or FinishRace.
type DerbyAction interface {
	Tag() DerbyActionTag
	// argument returns the one byte payload carried by the action, if any.
	argument() (uint8, bool)
}

type RecordCollision struct{}

type CollectGold struct {
	ItemIndex uint8 `json:"item_index"`
}

type CollectBoost struct {
	ItemIndex uint8 `json:"item_index"`
}

type PassCheckpoint struct {
	CheckpointID uint8 `json:"checkpoint_id"`
}

type CompleteLap struct{}

type FinishRace struct{}

func (RecordCollision) Tag() DerbyActionTag { return DerbyActionRecordCollision }
func (CollectGold) Tag() DerbyActionTag     { return DerbyActionCollectGold }
func (CollectBoost) Tag() DerbyActionTag    { return DerbyActionCollectBoost }
func (PassCheckpoint) Tag() DerbyActionTag  { return DerbyActionPassCheckpoint }
func (CompleteLap) Tag() DerbyActionTag     { return DerbyActionCompleteLap }
func (FinishRace) Tag() DerbyActionTag      { return DerbyActionFinishRace }

func (RecordCollision) argument() (uint8, bool)  { return 0, false }
func (a CollectGold) argument() (uint8, bool)    { return a.ItemIndex, true }
func (a CollectBoost) argument() (uint8, bool)   { return a.ItemIndex, true }
func (a PassCheckpoint) argument() (uint8, bool) { return a.CheckpointID, true }
func (CompleteLap) argument() (uint8, bool)      { return 0, false }
func (FinishRace) argument() (uint8, bool)       { return 0, false }

func readDerbyAction(tag DerbyActionTag, r *recordReader) (DerbyAction, error) {
	switch tag {
	case DerbyActionRecordCollision:
		return RecordCollision{}, nil
	case DerbyActionCollectGold:
		return CollectGold{ItemIndex: r.u8()}, nil
	case DerbyActionCollectBoost:
		return CollectBoost{ItemIndex: r.u8()}, nil
	case DerbyActionPassCheckpoint:
		return PassCheckpoint{CheckpointID: r.u8()}, nil
	case DerbyActionCompleteLap:
		return CompleteLap{}, nil
	case DerbyActionFinishRace:
		return FinishRace{}, nil
	}
	return nil, fmt.Errorf("unknown derby action tag %d", uint8(tag))
}

// ParseDerbyAction builds an action from its name and optional argument.
func ParseDerbyAction(name string, arg uint8) (DerbyAction, error) {
	for tag, n := range derbyActionNames {
		if n != name {
			continue
		}
		switch tag {
		case DerbyActionCollectGold:
			return CollectGold{ItemIndex: arg}, nil
		case DerbyActionCollectBoost:
			return CollectBoost{ItemIndex: arg}, nil
		case DerbyActionPassCheckpoint:
			return PassCheckpoint{CheckpointID: arg}, nil
		}
		return readDerbyAction(tag, nil)
	}
	return nil, fmt.Errorf("unknown derby action %q", name)
}

// DerbyActionHasArgument reports whether the named action takes an argument.
func DerbyActionHasArgument(name string) bool {
	switch name {
	case "collect_gold", "collect_boost", "pass_checkpoint":
		return true
	}
	return false
}

type derbyActionJSON struct {
	Type     string `json:"type"`
	Argument *uint8 `json:"argument,omitempty"`
}

// MarshalJSON renders the action as {"type": name, "argument": n}.
func (ix DerbyServerUpdate) MarshalJSON() ([]byte, error) {
	out := struct {
		RaceID uint64          `json:"race_id"`
		Action derbyActionJSON `json:"action"`
	}{RaceID: ix.RaceID}
	if ix.Action != nil {
		out.Action.Type = ix.Action.Tag().String()
		if arg, ok := ix.Action.argument(); ok {
			out.Action.Argument = &arg
		}
	}
	return json.Marshal(out)
}
