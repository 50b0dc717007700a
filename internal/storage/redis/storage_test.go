package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/pokerhub/holdem-room/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})
	s.storage = NewWithClient(client)
	s.ctx = context.Background()
}

func (s *StorageSuite) TestLoadEmptyBank() {
	bank, err := s.storage.LoadBank(s.ctx)

	s.Require().NoError(err)
	s.Empty(bank)
}

func (s *StorageSuite) TestBankRoundTrip() {
	err := s.storage.UpsertRecords(s.ctx, map[model.PlayerID]model.BankRecord{
		"alice": {Chips: 500, Debt: 1000, Name: "alice"},
		"bob":   {Chips: 2500, Debt: 0, Name: "bob"},
	})
	s.Require().NoError(err)

	bank, err := s.storage.LoadBank(s.ctx)
	s.Require().NoError(err)
	s.Len(bank, 2)
	s.Equal(model.BankRecord{Chips: 500, Debt: 1000, Name: "alice"}, bank["alice"])
	s.Equal(model.BankRecord{Chips: 2500, Debt: 0, Name: "bob"}, bank["bob"])
}

func (s *StorageSuite) TestUpsertLeavesOtherRecordsAlone() {
	s.Require().NoError(s.storage.UpsertRecords(s.ctx, map[model.PlayerID]model.BankRecord{
		"alice": {Chips: 500, Name: "alice"},
		"bob":   {Chips: 800, Name: "bob"},
	}))

	s.Require().NoError(s.storage.UpsertRecords(s.ctx, map[model.PlayerID]model.BankRecord{
		"alice": {Chips: 100, Name: "alice"},
	}))

	bank, err := s.storage.LoadBank(s.ctx)
	s.Require().NoError(err)
	s.Equal(100, bank["alice"].Chips)
	s.Equal(800, bank["bob"].Chips)
}

func (s *StorageSuite) TestUpsertNothingIsANoOp() {
	s.Require().NoError(s.storage.UpsertRecords(s.ctx, nil))
}

func (s *StorageSuite) TestClearBank() {
	s.Require().NoError(s.storage.UpsertRecords(s.ctx, map[model.PlayerID]model.BankRecord{
		"alice": {Chips: 500, Name: "alice"},
	}))

	s.Require().NoError(s.storage.ClearBank(s.ctx))

	bank, err := s.storage.LoadBank(s.ctx)
	s.Require().NoError(err)
	s.Empty(bank)
}

func (s *StorageSuite) TestLoadBankRejectsCorruptRecord() {
	s.mini.HSet(bankKey, "alice", "not json")

	_, err := s.storage.LoadBank(s.ctx)
	s.Error(err)
}
