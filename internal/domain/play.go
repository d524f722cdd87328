package domain

import "context"

type Genre struct {
	ID   int
	Name string
}

func (g Genre) String() string {
	return g.Name
}

type Actor struct {
	ID        int
	FirstName string
	LastName  string
}

func (a Actor) FullName() string {
	return a.FirstName + " " + a.LastName
}

func (a Actor) String() string {
	return a.FullName()
}

// Play links to existing genres and actors. Only their IDs are read when a
// play is created; the repository fills in the rest.
type Play struct {
	ID          int
	Title       string
	Description string
	Genres      []Genre
	Actors      []Actor
}

func (p Play) String() string {
	return p.Title
}

func (p Play) GenreIDs() []int {
	ids := make([]int, len(p.Genres))
	for i, g := range p.Genres {
		ids[i] = g.ID
	}

	return ids
}

func (p Play) ActorIDs() []int {
	ids := make([]int, len(p.Actors))
	for i, a := range p.Actors {
		ids[i] = a.ID
	}

	return ids
}

type GenreRepository interface {
	Create(ctx context.Context, genre *Genre) error
	GetAll(ctx context.Context) ([]Genre, error)
}

type ActorRepository interface {
	Create(ctx context.Context, actor *Actor) error
	GetAll(ctx context.Context) ([]Actor, error)
}

type PlayRepository interface {
	Create(ctx context.Context, play *Play) error
	GetById(ctx context.Context, id int) (*Play, error)
	GetAll(ctx context.Context) ([]Play, error)
}
