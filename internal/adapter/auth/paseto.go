package auth

import (
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/pequenoleitor/ordercore/internal/adapter/config"
	"github.com/pequenoleitor/ordercore/internal/core/domain"
	"github.com/pequenoleitor/ordercore/internal/core/port"
)

// PasetoToken verifies tokens issued by the storefront's auth service. The
// symmetric key is shared with the issuer via configuration.
type PasetoToken struct {
	parser *paseto.Parser
	key    *paseto.V4SymmetricKey
}

func New(conf *config.Auth) (port.TokenService, error) {
	parser := paseto.NewParser()

	var key paseto.V4SymmetricKey
	if conf.SymmetricKeyHex == "" {
		key = paseto.NewV4SymmetricKey()
	} else {
		var err error
		key, err = paseto.V4SymmetricKeyFromHex(conf.SymmetricKeyHex)
		if err != nil {
			return nil, domain.ErrTokenCreation
		}
	}

	s := PasetoToken{
		parser: &parser,
		key:    &key,
	}

	return &s, nil
}

func (p *PasetoToken) CreateToken(payload *port.TokenPayload) (string, error) {
	token := paseto.NewToken()
	token.SetExpiration(time.Now().Add(1000 * time.Hour))

	err := token.Set("payload", payload)
	if err != nil {
		return "", domain.ErrTokenCreation
	}

	return token.V4Encrypt(*p.key, nil), nil
}

func (p *PasetoToken) VerifyToken(token string) (*port.TokenPayload, error) {
	parsedToken, err := p.parser.ParseV4Local(*p.key, token, nil)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	payload := port.TokenPayload{}
	err = parsedToken.Get("payload", &payload)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return &payload, nil
}
