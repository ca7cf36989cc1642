// Package seed loads the demo roster, sittings and accounts into empty storage.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BradenHooton/parliament/internal/models"
	"github.com/BradenHooton/parliament/internal/services"
	pkgauth "github.com/BradenHooton/parliament/pkg/auth"
	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoFixture []byte

type Fixture struct {
	Parties     []PartyFixture      `yaml:"parties"`
	Legislators []LegislatorFixture `yaml:"legislators"`
	Sessions    []SessionFixture    `yaml:"sessions"`
	Accounts    []AccountFixture    `yaml:"accounts"`
}

type PartyFixture struct {
	Name    string `yaml:"name"`
	Color   string `yaml:"color"`
	Members int    `yaml:"members"`
	Leader  string `yaml:"leader"`
	Founded int    `yaml:"founded"`
}

type LegislatorFixture struct {
	Ref        int64  `yaml:"ref"`
	Name       string `yaml:"name"`
	Party      string `yaml:"party"`
	District   string `yaml:"district"`
	Attendance int    `yaml:"attendance"`
	Votes      int    `yaml:"votes"`
	Speeches   int    `yaml:"speeches"`
	Email      string `yaml:"email"`
	Phone      string `yaml:"phone"`
}

type SessionFixture struct {
	Title      string   `yaml:"title"`
	Date       string   `yaml:"date"`
	Time       string   `yaml:"time"`
	Kind       string   `yaml:"kind"`
	Status     string   `yaml:"status"`
	Attendance int      `yaml:"attendance"`
	Agenda     []string `yaml:"agenda"`
	Duration   int      `yaml:"duration"`
	Attendees  []int64  `yaml:"attendees"`
}

type AccountFixture struct {
	Login       string `yaml:"login"`
	Role        string `yaml:"role"`
	DisplayName string `yaml:"display_name"`
	Password    string `yaml:"password"`
	Legislator  int64  `yaml:"legislator"`
}

// Repositories is the storage the fixture is written to
type Repositories struct {
	Accounts    services.AccountRepository
	Legislators services.LegislatorRepository
	Parties     services.PartyRepository
	Sessions    services.SessionRepository
}

// Options tune how the fixture is applied
type Options struct {
	// AccountPassword replaces every fixture password when set
	AccountPassword string
}

// Result counts the records written
type Result struct {
	Parties       int
	Legislators   int
	Sessions      int
	Accounts      int
	RosterSkipped bool
}

// Demo parses the embedded demo fixture
func Demo() (*Fixture, error) {
	return Parse(demoFixture)
}

// Parse decodes a fixture, rejecting unknown keys
func Parse(data []byte) (*Fixture, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode seed fixture: %w", err)
	}
	return &f, nil
}

// Apply writes the fixture. The roster and sittings are only written when no legislator exists yet;
// accounts whose login is already taken are left untouched.
func (f *Fixture) Apply(ctx context.Context, repos Repositories, hasher services.PasswordHasher, opts Options, logger *slog.Logger) (*Result, error) {
	if opts.AccountPassword != "" {
		if err := pkgauth.CheckPasswordPolicy(opts.AccountPassword); err != nil {
			return nil, fmt.Errorf("seed account password: %w", err)
		}
	}

	result := &Result{}

	count, err := repos.Legislators.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count legislators: %w", err)
	}

	refs := make(map[int64]int64, len(f.Legislators))
	if count > 0 {
		result.RosterSkipped = true
		logger.Info("roster already populated, skipping demo roster", slog.Int("legislators", count))
		if err := f.resolveExisting(ctx, repos, refs); err != nil {
			return nil, err
		}
	} else if err := f.applyRoster(ctx, repos, refs, result); err != nil {
		return nil, err
	}

	for _, af := range f.Accounts {
		created, err := f.applyAccount(ctx, repos, hasher, opts, refs, af)
		if err != nil {
			return nil, err
		}
		if created {
			result.Accounts++
		}
	}

	logger.Info("demo data applied",
		slog.Int("parties", result.Parties),
		slog.Int("legislators", result.Legislators),
		slog.Int("sessions", result.Sessions),
		slog.Int("accounts", result.Accounts))
	return result, nil
}

func (f *Fixture) applyRoster(ctx context.Context, repos Repositories, refs map[int64]int64, result *Result) error {
	for _, pf := range f.Parties {
		party := &models.Party{
			Name:                pf.Name,
			Color:               pf.Color,
			DeclaredMemberCount: pf.Members,
			LeaderName:          pf.Leader,
			FoundedYear:         pf.Founded,
		}
		if err := party.Validate(); err != nil {
			return fmt.Errorf("party %q: %w", pf.Name, err)
		}
		if _, err := repos.Parties.Create(ctx, party); err != nil {
			return fmt.Errorf("create party %q: %w", pf.Name, err)
		}
		result.Parties++
	}

	for _, lf := range f.Legislators {
		partyName := lf.Party
		legislator := &models.Legislator{
			Name:              lf.Name,
			PartyName:         &partyName,
			DistrictLabel:     lf.District,
			AttendancePercent: lf.Attendance,
			VoteCount:         lf.Votes,
			SpeechCount:       lf.Speeches,
			Email:             lf.Email,
			Phone:             lf.Phone,
		}
		if err := legislator.Validate(); err != nil {
			return fmt.Errorf("legislator %d: %w", lf.Ref, err)
		}
		created, err := repos.Legislators.Create(ctx, legislator)
		if err != nil {
			return fmt.Errorf("create legislator %d: %w", lf.Ref, err)
		}
		refs[lf.Ref] = created.ID
		result.Legislators++
	}

	for _, sf := range f.Sessions {
		attendees := make([]int64, 0, len(sf.Attendees))
		for _, ref := range sf.Attendees {
			id, ok := refs[ref]
			if !ok {
				return fmt.Errorf("session %q: unknown legislator ref %d", sf.Title, ref)
			}
			attendees = append(attendees, id)
		}
		session := &models.Session{
			Title:             sf.Title,
			Date:              sf.Date,
			Time:              sf.Time,
			Kind:              sf.Kind,
			Status:            sf.Status,
			AttendeeIDs:       attendees,
			AttendancePercent: sf.Attendance,
			Agenda:            sf.Agenda,
			DurationMinutes:   sf.Duration,
		}
		if err := session.Validate(); err != nil {
			return fmt.Errorf("session %q: %w", sf.Title, err)
		}
		if _, err := repos.Sessions.Create(ctx, session); err != nil {
			return fmt.Errorf("create session %q: %w", sf.Title, err)
		}
		result.Sessions++
	}
	return nil
}

// resolveExisting maps fixture refs onto stored legislators by name so accounts can still link
func (f *Fixture) resolveExisting(ctx context.Context, repos Repositories, refs map[int64]int64) error {
	stored, err := repos.Legislators.List(ctx)
	if err != nil {
		return fmt.Errorf("list legislators: %w", err)
	}
	byName := make(map[string]int64, len(stored))
	for _, l := range stored {
		byName[l.Name] = l.ID
	}
	for _, lf := range f.Legislators {
		if id, ok := byName[lf.Name]; ok {
			refs[lf.Ref] = id
		}
	}
	return nil
}

func (f *Fixture) applyAccount(ctx context.Context, repos Repositories, hasher services.PasswordHasher, opts Options, refs map[int64]int64, af AccountFixture) (bool, error) {
	var legislatorID *int64
	if af.Role == models.RoleLegislator {
		id, ok := refs[af.Legislator]
		if !ok {
			// Linked legislator is not in storage
			return false, nil
		}
		legislatorID = &id
	}

	if _, err := repos.Accounts.GetByLoginName(ctx, af.Login); err == nil {
		return false, nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return false, fmt.Errorf("look up account %q: %w", af.Login, err)
	}

	secret := af.Password
	if opts.AccountPassword != "" {
		secret = opts.AccountPassword
	}
	hash, err := hasher.Hash(secret)
	if err != nil {
		return false, fmt.Errorf("hash password for %q: %w", af.Login, err)
	}

	account, err := models.NewAccount(af.Login, hash, af.Role, af.DisplayName, legislatorID)
	if err != nil {
		return false, fmt.Errorf("account %q: %w", af.Login, err)
	}
	if _, err := repos.Accounts.Create(ctx, account); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return false, nil
		}
		return false, fmt.Errorf("create account %q: %w", af.Login, err)
	}
	return true, nil
}
