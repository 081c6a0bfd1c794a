// Package security contains control API authorization.
package security

import (
	"sync"
	"time"

	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/providers"
	"github.com/gobwas/glob"
	"github.com/patrickmn/go-cache"
)

const (
	// Logger role token.
	logRoleToken = "role"
	// Logger user token.
	logUserToken = "user"
)

// Implements security provider.
type provider struct {
	sync.Mutex

	logger common.ILoggerProvider
	users  map[string]string
	roles  []*bakedRole
	cache  *cache.Cache
}

// ConstructSecurityProvider has all data required for a new security provider.
type ConstructSecurityProvider struct {
	Logger    common.ILoggerProvider
	UsersFile string
	Roles     []*providers.SecRole
}

// Helper type for pre-baked role.
type bakedRole struct {
	Name  string
	Rules []*providers.BakedRule
	Users []glob.Glob
}

// NewSecurityProvider constructs new security provider.
// Authorization is disabled if users file is not configured.
// Without roles every known user is allowed to do everything.
func NewSecurityProvider(ctor *ConstructSecurityProvider) providers.ISecurityProvider {
	prov := &provider{
		logger: ctor.Logger,
		cache:  cache.New(5*time.Minute, 10*time.Minute),
	}

	if "" == ctor.UsersFile {
		return prov
	}

	users, err := readUsersFile(ctor.UsersFile)
	if err != nil {
		ctor.Logger.Error("Failed to read users file, API is locked", err, common.LogFileToken, ctor.UsersFile)
		users = make(map[string]string)
	}

	prov.users = users
	if 0 == len(ctor.Roles) {
		ctor.Logger.Warn("No API roles defined, every user is allowed everything")
		prov.roles = []*bakedRole{{
			Name:  "default",
			Users: []glob.Glob{glob.MustCompile("*")},
			Rules: []*providers.BakedRule{{Resources: []glob.Glob{glob.MustCompile("*")}, Get: true, Command: true}},
		}}
	} else {
		prov.processRoles(ctor.Roles)
	}

	return prov
}

// Enabled returns whether API requires authorization.
func (p *provider) Enabled() bool {
	return nil != p.users
}

// GetUser returns found user with allowed roles if any.
// Successful authorizations are cached to avoid bcrypt on every call.
func (p *provider) GetUser(headers map[string][]string) (providers.IAuthenticatedUser, error) {
	creds, err := parseHeader(headers)
	if err != nil {
		p.logger.Warn("Unauthorized access attempt", common.LogErrorToken, err.Error())
		return nil, err
	}

	key := creds.user + ":" + creds.password
	if cached, ok := p.cache.Get(key); ok {
		return cached.(*AuthenticatedUser), nil
	}

	p.Lock()
	defer p.Unlock()

	hash, ok := p.users[creds.user]
	if !ok || !checkPassword(hash, creds.password) {
		p.logger.Warn("User is unauthorized", logUserToken, creds.user)
		return nil, &ErrUserNotFound{User: creds.user}
	}

	authUser := &AuthenticatedUser{
		Username: creds.user,
		Rules:    make([]*providers.BakedRule, 0),
	}

	for _, v := range p.roles {
		for _, u := range v.Users {
			if u.Match(creds.user) {
				authUser.Rules = append(authUser.Rules, v.Rules...)
				break
			}
		}
	}

	p.cache.Set(key, authUser, cache.DefaultExpiration)
	return authUser, nil
}

// Processes configured roles and pre-complies globs.
func (p *provider) processRoles(roles []*providers.SecRole) {
	p.roles = make([]*bakedRole, 0)
	for _, v := range roles {
		role := &bakedRole{
			Name:  v.Name,
			Users: compileAll(p.logger, v.Name, v.Users),
			Rules: make([]*providers.BakedRule, 0),
		}

		if 0 == len(role.Users) {
			p.logger.Warn("Skipping role since users are empty", logRoleToken, v.Name)
			continue
		}

		for i := range v.Rules {
			rule := p.processRule(&v.Rules[i], v.Name)
			if nil == rule {
				continue
			}

			role.Rules = append(role.Rules, rule)
		}

		if 0 == len(role.Rules) {
			p.logger.Warn("Skipping role since rules are empty", logRoleToken, v.Name)
			continue
		}

		p.roles = append(p.roles, role)
	}
}

// Processing config's role rules.
func (p *provider) processRule(rule *providers.SecRoleRule, roleName string) *providers.BakedRule {
	baked := &providers.BakedRule{
		Resources: compileAll(p.logger, roleName, rule.Resources),
	}

	if 0 == len(baked.Resources) {
		p.logger.Warn("Skipping rule since resources are empty", logRoleToken, roleName)
		return nil
	}

	for _, v := range rule.Verbs {
		verb, err := providers.SecVerbString(v)
		if err != nil {
			p.logger.Warn("Skipping unknown verb", logRoleToken, roleName, common.LogNameToken, v)
			continue
		}

		switch verb {
		case providers.SecVerbAll:
			baked.Get = true
			baked.Command = true
		case providers.SecVerbGet:
			baked.Get = true
		case providers.SecVerbCommand:
			baked.Command = true
		}
	}

	if !baked.Get && !baked.Command {
		return nil
	}

	return baked
}

// Compiles glob patterns skipping broken ones.
func compileAll(logger common.ILoggerProvider, roleName string, patterns []string) []glob.Glob {
	result := make([]glob.Glob, 0, len(patterns))
	for _, v := range patterns {
		g, err := glob.Compile(v)
		if err != nil {
			logger.Warn("Failed to compile role's pattern", "pattern", v, logRoleToken, roleName)
			continue
		}

		result = append(result, g)
	}

	return result
}
