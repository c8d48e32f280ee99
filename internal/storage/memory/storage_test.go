package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestGetMissingKey() {
	v, ok, err := s.storage.GetInt(s.ctx, "missing")
	s.Require().NoError(err)
	s.False(ok)
	s.Zero(v)
}

func (s *StorageSuite) TestSetAndGet() {
	s.Require().NoError(s.storage.SetInt(s.ctx, "best", 2048))
	s.Require().NoError(s.storage.SetInt(s.ctx, "best", 4096))

	v, ok, err := s.storage.GetInt(s.ctx, "best")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(4096, v)
}

func (s *StorageSuite) TestConcurrentWrites() {
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.storage.SetInt(s.ctx, "best", i)
			_, _, _ = s.storage.GetInt(s.ctx, "best")
		}()
	}
	wg.Wait()

	_, ok, err := s.storage.GetInt(s.ctx, "best")
	s.Require().NoError(err)
	s.True(ok)
}

func (s *StorageSuite) TestSetMaxIntOnlyRaises() {
	v, err := s.storage.SetMaxInt(s.ctx, "best", 300)
	s.Require().NoError(err)
	s.Equal(300, v)

	v, err = s.storage.SetMaxInt(s.ctx, "best", 100)
	s.Require().NoError(err)
	s.Equal(300, v)

	v, err = s.storage.SetMaxInt(s.ctx, "best", 900)
	s.Require().NoError(err)
	s.Equal(900, v)

	stored, _, err := s.storage.GetInt(s.ctx, "best")
	s.Require().NoError(err)
	s.Equal(900, stored)
}

func (s *StorageSuite) TestConcurrentSetMaxInt() {
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.storage.SetMaxInt(s.ctx, "best", i)
		}()
	}
	wg.Wait()

	v, _, err := s.storage.GetInt(s.ctx, "best")
	s.Require().NoError(err)
	s.Equal(49, v)
}
