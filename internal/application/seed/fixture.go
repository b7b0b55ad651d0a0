package seed

import (
	"errors"
	"fmt"
	"os"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrFixtureNotFound is returned when the fixture file does not exist
var ErrFixtureNotFound = errors.New("fixture file not found")

// Fixture is the sample data set loaded by cmd/seed
type Fixture struct {
	Members []MemberFixture `yaml:"members"`
	Items   []ItemFixture   `yaml:"items"`
	Orders  []OrderFixture  `yaml:"orders"`
}

// MemberFixture describes one member
type MemberFixture struct {
	Name    string `yaml:"name"`
	City    string `yaml:"city"`
	Street  string `yaml:"street"`
	Zipcode string `yaml:"zipcode"`
}

// ItemFixture describes one catalog item
type ItemFixture struct {
	ID       string          `yaml:"id"`
	Type     string          `yaml:"type"`
	Name     string          `yaml:"name"`
	Price    decimal.Decimal `yaml:"price"`
	Stock    int             `yaml:"stock"`
	Author   string          `yaml:"author,omitempty"`
	ISBN     string          `yaml:"isbn,omitempty"`
	Artist   string          `yaml:"artist,omitempty"`
	Etc      string          `yaml:"etc,omitempty"`
	Director string          `yaml:"director,omitempty"`
	Actor    string          `yaml:"actor,omitempty"`
}

// OrderFixture places Count of Item for the member named Member
type OrderFixture struct {
	Member string `yaml:"member"`
	Item   string `yaml:"item"`
	Count  int    `yaml:"count"`
}

// LoadFixture reads a YAML fixture file
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFixtureNotFound, path)
		}
		return nil, fmt.Errorf("reading fixture file: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes and validates YAML fixture bytes
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that every order refers to a member and an item of the fixture
func (f *Fixture) Validate() error {
	members := make(map[string]bool, len(f.Members))
	for _, m := range f.Members {
		if m.Name == "" {
			return errors.New("fixture member without name")
		}
		members[m.Name] = true
	}
	items := make(map[string]bool, len(f.Items))
	for _, it := range f.Items {
		if it.ID == "" {
			return errors.New("fixture item without id")
		}
		items[it.ID] = true
	}
	for i, o := range f.Orders {
		if !members[o.Member] {
			return fmt.Errorf("order %d: unknown member %q", i, o.Member)
		}
		if !items[o.Item] {
			return fmt.Errorf("order %d: unknown item %q", i, o.Item)
		}
		if o.Count <= 0 {
			return fmt.Errorf("order %d: count must be positive", i)
		}
	}
	return nil
}

// DefaultFixture is the classic shop sample: two members, four books, two orders.
func DefaultFixture() *Fixture {
	return &Fixture{
		Members: []MemberFixture{
			{Name: "userA", City: "Seoul", Street: "1", Zipcode: "1111"},
			{Name: "userB", City: "Busan", Street: "2", Zipcode: "2222"},
		},
		Items: []ItemFixture{
			{ID: "JPA1", Type: "BOOK", Name: "JPA1 BOOK", Price: decimal.NewFromInt(10000), Stock: 100},
			{ID: "JPA2", Type: "BOOK", Name: "JPA2 BOOK", Price: decimal.NewFromInt(20000), Stock: 100},
			{ID: "SPRING1", Type: "BOOK", Name: "SPRING1 BOOK", Price: decimal.NewFromInt(20000), Stock: 200},
			{ID: "SPRING2", Type: "BOOK", Name: "SPRING2 BOOK", Price: decimal.NewFromInt(40000), Stock: 300},
		},
		Orders: []OrderFixture{
			{Member: "userA", Item: "JPA1", Count: 1},
			{Member: "userB", Item: "SPRING1", Count: 3},
		},
	}
}

var itemTypes = []string{"BOOK", "ALBUM", "MOVIE"}

// GenerateFixture builds a random but valid fixture. A non-zero seed makes the
// output repeatable; zero picks a random seed.
func GenerateFixture(seed uint64, members, items, orders int) *Fixture {
	f := gofakeit.New(seed)
	fixture := &Fixture{}

	seen := make(map[string]bool)
	for len(fixture.Members) < members {
		name := f.Name()
		if seen[name] {
			name = fmt.Sprintf("%s %d", name, len(fixture.Members))
		}
		seen[name] = true
		fixture.Members = append(fixture.Members, MemberFixture{
			Name:    name,
			City:    f.City(),
			Street:  f.Street(),
			Zipcode: f.Zip(),
		})
	}

	for i := 0; i < items; i++ {
		item := ItemFixture{
			ID:    fmt.Sprintf("ITEM-%04d", i+1),
			Type:  itemTypes[i%len(itemTypes)],
			Name:  f.ProductName(),
			Price: decimal.NewFromFloat(f.Price(1000, 50000)).Round(0),
			Stock: f.Number(50, 500),
		}
		switch item.Type {
		case "BOOK":
			item.Author = f.Name()
			item.ISBN = f.Numerify("##########")
		case "ALBUM":
			item.Artist = f.Name()
			item.Etc = f.Word()
		case "MOVIE":
			item.Director = f.Name()
			item.Actor = f.Name()
		}
		fixture.Items = append(fixture.Items, item)
	}

	if members == 0 || items == 0 {
		return fixture
	}
	for i := 0; i < orders; i++ {
		fixture.Orders = append(fixture.Orders, OrderFixture{
			Member: fixture.Members[f.Number(0, members-1)].Name,
			Item:   fixture.Items[f.Number(0, items-1)].ID,
			Count:  f.Number(1, 3),
		})
	}
	return fixture
}
