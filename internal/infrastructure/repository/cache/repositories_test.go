package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/league-engine/internal/domain/division"
	"github.com/riskibarqy/league-engine/internal/domain/group"
	"github.com/riskibarqy/league-engine/internal/domain/team"
	"github.com/riskibarqy/league-engine/internal/infrastructure/repository/memory"
	divisionmock "github.com/riskibarqy/league-engine/internal/mocks/domain/division"
	basecache "github.com/riskibarqy/league-engine/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

func TestDivisionRepository_LoadsOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := divisionmock.NewRepository(t)
	next.On("List", mock.Anything).Return([]division.Division{{ID: "d1", Level: 1}}, nil).Once()
	next.On("GetByID", mock.Anything, "missing").Return(division.Division{}, false, nil).Once()

	repo := NewDivisionRepository(next, basecache.NewStore(time.Minute))
	for i := 0; i < 3; i++ {
		items, err := repo.List(ctx)
		if err != nil || len(items) != 1 {
			t.Fatalf("list divisions: items=%v err=%v", items, err)
		}
		items[0].Name = "mutated"
	}
	items, _ := repo.List(ctx)
	if items[0].Name != "" {
		t.Fatalf("cached slice must not alias caller copies")
	}

	for i := 0; i < 2; i++ {
		if _, exists, err := repo.GetByID(ctx, "missing"); err != nil || exists {
			t.Fatalf("expected cached miss, exists=%v err=%v", exists, err)
		}
	}
}

func TestDivisionRepository_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	boom := errors.New("db down")
	next := divisionmock.NewRepository(t)
	next.On("List", mock.Anything).Return(nil, boom).Once()
	next.On("List", mock.Anything).Return([]division.Division{{ID: "d1", Level: 1}}, nil).Once()

	repo := NewDivisionRepository(next, basecache.NewStore(time.Minute))
	if _, err := repo.List(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if items, err := repo.List(ctx); err != nil || len(items) != 1 {
		t.Fatalf("expected reload after failure: items=%v err=%v", items, err)
	}
}

func TestGroupAndTeamRepository_ServeFromNext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := basecache.NewStore(time.Minute)
	groups := NewGroupRepository(memory.NewGroupRepository([]group.Group{
		{ID: "g2", DivisionID: "d1", Code: "B"},
		{ID: "g1", DivisionID: "d1", Code: "A"},
	}), store)
	teams := NewTeamRepository(memory.NewTeamRepository([]team.Team{
		{ID: "t1", Name: "One"},
		{ID: "t2", Name: "Two"},
	}), store)

	items, err := groups.ListByDivision(ctx, "d1")
	if err != nil || len(items) != 2 || items[0].Code != "A" {
		t.Fatalf("unexpected groups: %+v err=%v", items, err)
	}
	if item, exists, err := groups.GetByID(ctx, "g2"); err != nil || !exists || item.Code != "B" {
		t.Fatalf("unexpected group: %+v exists=%v err=%v", item, exists, err)
	}

	listed, err := teams.ListByIDs(ctx, []string{"t2", "t1"})
	if err != nil || len(listed) != 2 || listed[0].ID != "t2" {
		t.Fatalf("teams must keep request order: %+v err=%v", listed, err)
	}
	if empty, err := teams.ListByIDs(ctx, nil); err != nil || len(empty) != 0 {
		t.Fatalf("empty id list must return no teams: %+v err=%v", empty, err)
	}
	if _, exists, _ := teams.GetByID(ctx, "t9"); exists {
		t.Fatalf("unknown team must not exist")
	}
}
