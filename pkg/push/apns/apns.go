package apns

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pairflow/conf"

	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"
	"golang.org/x/net/http2"
)

type PushMessage struct {
	Category string `form:"category,omitempty" json:"category,omitempty" query:"category,omitempty"`
	Title    string `form:"title,omitempty" json:"title,omitempty" query:"title,omitempty"`
	Body     string `form:"body,omitempty" json:"body,omitempty" query:"body,omitempty"`
	// ios notification sound(system sound please refer to http://iphonedevwiki.net/index.php/AudioServices)
	Sound     string                 `form:"sound,omitempty" json:"sound,omitempty" query:"sound,omitempty"`
	ExtParams map[string]interface{} `form:"ext_params,omitempty" json:"ext_params,omitempty" query:"ext_params,omitempty"`
}

type PushResponse struct {
	ApnsID string
	Reason string
}

// 基于token的推送，p8 密钥文件在 apple dev 官网的用户与访问权限中创建
type Apns struct {
	cfg    *conf.Apns
	client *apns2.Client
}

func NewTokenApns(cfg *conf.Apns) (*Apns, error) {
	authKey, err := token.AuthKeyFromFile(cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create APNS auth key: %w", err)
	}

	rootCAs, err := x509.SystemCertPool()
	if err != nil {
		return nil, fmt.Errorf("failed to get rootCAs: %w", err)
	}

	host := apns2.HostDevelopment
	if cfg.IsProd {
		host = apns2.HostProduction
	}

	return &Apns{
		cfg,
		&apns2.Client{
			Token: &token.Token{
				AuthKey: authKey,
				KeyID:   cfg.KeyID,
				TeamID:  cfg.TeamID,
			},
			HTTPClient: &http.Client{
				Transport: &http2.Transport{
					DialTLS: apns2.DialTLS,
					TLSClientConfig: &tls.Config{
						RootCAs: rootCAs,
					},
				},
				Timeout: apns2.HTTPClientTimeout,
			},
			Host: host,
		},
	}, nil
}

func (a *Apns) Push(msg *PushMessage, deviceToken string) (res *PushResponse, err error) {
	if msg == nil {
		return nil, fmt.Errorf("APNS push failed :%s", "无效的message")
	}
	pl := payload.NewPayload().AlertTitle(msg.Title).AlertBody(msg.Body).Sound(msg.Sound).Category(msg.Category)
	group, exist := msg.ExtParams["group"]
	if exist {
		pl = pl.ThreadID(group.(string))
	}

	for k, v := range msg.ExtParams {
		pl.Custom(strings.ToLower(k), fmt.Sprintf("%v", v))
	}

	resp, err := a.client.Push(&apns2.Notification{
		DeviceToken: deviceToken,
		Topic:       a.cfg.Topic,
		Expiration:  time.Now().Add(24 * time.Hour),
		Payload:     pl.MutableContent(),
	})

	if err != nil {
		return nil, err
	}

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("APNS push failed :%s", resp.Reason)
	}
	res = &PushResponse{
		ApnsID: resp.ApnsID,
		Reason: resp.Reason,
	}
	return
}
