package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/arenaledger/arena-node/x/arena/types"
)

type QueryTestSuite struct {
	suite.Suite
	f *testFixture
}

func TestQueryTestSuite(t *testing.T) {
	suite.Run(t, new(QueryTestSuite))
}

func (s *QueryTestSuite) SetupTest() {
	s.f = SetupTest(s.T())
}

func (s *QueryTestSuite) TestMissingRecords() {
	f := s.f

	_, found, err := f.k.GetMatch(f.ctx, 1)
	s.Require().NoError(err)
	s.False(found)

	_, found, err = f.k.GetPlayerState(f.ctx, 1, f.player1)
	s.Require().NoError(err)
	s.False(found)

	_, found, err = f.k.GetDerby(f.ctx, 1)
	s.Require().NoError(err)
	s.False(found)

	_, found, err = f.k.GetSession(f.ctx, f.player1, f.player2)
	s.Require().NoError(err)
	s.False(found)
}

func (s *QueryTestSuite) TestGetters() {
	f := s.f
	f.joinedMatch(s.T(), 4)

	m, found, err := f.k.GetMatch(f.ctx, 4)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Equal(f.player2, m.Player2)

	ps, found, err := f.k.GetPlayerState(f.ctx, 4, f.player2)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Equal(uint64(4), ps.MatchID)
	s.Equal(f.player2, ps.Player)

	_, err = f.k.CreateDerby(f.ctx, f.player1, f.server, 9, types.Seed{1})
	s.Require().NoError(err)
	d, found, err := f.k.GetDerby(f.ctx, 9)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Equal(types.Seed{1}, d.VRFSeed)

	validUntil := genesisTime.Unix() + 600
	_, err = f.k.CreateSession(f.ctx, f.player1, testKey(0x33), validUntil)
	s.Require().NoError(err)
	tok, found, err := f.k.GetSession(f.ctx, f.player1, testKey(0x33))
	s.Require().NoError(err)
	s.Require().True(found)
	s.Equal(validUntil, tok.ValidUntil)
}

func (s *QueryTestSuite) TestListings() {
	f := s.f
	f.joinedMatch(s.T(), 1)
	f.joinedMatch(s.T(), 2)
	_, err := f.k.CreateDerby(f.ctx, f.player1, f.server, 3, types.Seed{})
	s.Require().NoError(err)

	matches, err := f.k.AllMatches(f.ctx)
	s.Require().NoError(err)
	s.Len(matches, 2)

	states, err := f.k.AllPlayerStates(f.ctx)
	s.Require().NoError(err)
	s.Len(states, 4)

	derbies, err := f.k.AllDerbies(f.ctx)
	s.Require().NoError(err)
	s.Len(derbies, 1)

	sessions, err := f.k.AllSessions(f.ctx)
	s.Require().NoError(err)
	s.Empty(sessions)
}
