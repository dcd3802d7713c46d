package agent

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
)

var (
	ErrUnknownRole     = errors.New("設定エラー: 不明なroleです")
	ErrUnknownStrategy = errors.New("設定エラー: 不明なプレイヤー名です")
	ErrInvalidValue    = errors.New("設定エラー: 値が不正です")
	ErrNoNetwork       = errors.New("設定エラー: 重みテーブルがありません(initまたはloadが必要です)")
)

type Role string

const (
	RolePlayer      Role = "player"
	RoleEnvironment Role = "environment"
)

// Config is the typed form of an agent's "key=value" argument string.
//
// Configはエージェントの"key=value"形式の引数を型付きで保持します。
type Config struct {
	Name  string
	Role  Role
	Alpha float32

	// Init requests freshly allocated weight tables. InitInfo keeps the raw value of init.
	Init     bool
	InitInfo string
	Load     string
	Save     string

	Seed    uint64
	HasSeed bool

	// Meta keeps every key as given, including keys this package does not interpret.
	Meta map[string]string
}

// DefaultArgs returns the argument string placed in front of user arguments for a role.
func DefaultArgs(role Role) string {
	switch role {
	case RolePlayer:
		return "name=TD alpha=0.005 role=player"
	case RoleEnvironment:
		return "name=random role=environment"
	}
	return "name=unknown role=unknown"
}

// ParseArgs parses whitespace separated key=value tokens over the defaults of role.
// A token without '=' sets the key with an empty value. Later tokens win.
//
// ParseArgsは空白区切りのkey=valueをroleの既定値の上から読み込みます。後に出現したものが優先されます。
func ParseArgs(role Role, args string) (Config, error) {
	meta := map[string]string{}
	for _, pair := range strings.Fields(DefaultArgs(role) + " " + args) {
		key, value, _ := strings.Cut(pair, "=")
		meta[key] = value
	}

	cfg := Config{
		Name: meta["name"],
		Role: Role(meta["role"]),
		Load: meta["load"],
		Save: meta["save"],
		Meta: meta,
	}

	if v, ok := meta["alpha"]; ok {
		alpha, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return Config{}, fmt.Errorf("%w: alpha=%q", ErrInvalidValue, v)
		}
		cfg.Alpha = float32(alpha)
	}

	if v, ok := meta["init"]; ok {
		cfg.Init = true
		cfg.InitInfo = v
	}

	if v, ok := meta["seed"]; ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%w: seed=%q", ErrInvalidValue, v)
		}
		cfg.Seed = seed
		cfg.HasSeed = true
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Role {
	case RolePlayer:
		if _, ok := strategies[c.Name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownStrategy, c.Name)
		}
	case RoleEnvironment:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRole, c.Role)
	}

	if c.Alpha < 0 || math32.IsNaN(c.Alpha) || math32.IsInf(c.Alpha, 0) {
		return fmt.Errorf("%w: alpha=%v", ErrInvalidValue, c.Alpha)
	}
	return nil
}

// String renders the configuration the way it was given, sorted by key.
func (c Config) String() string {
	keys := make([]string, 0, len(c.Meta))
	for k := range c.Meta {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(c.Meta[k])
		sb.WriteString(";")
	}
	return sb.String()
}
