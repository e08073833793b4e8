package netcontroller

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sdnfabric/sdnctl/internal/credentials"
)

// Client is a minimal REST client for the controller's northbound API.
type Client struct {
	baseURL    string
	cred       credentials.Credential
	httpClient *http.Client
}

var _ Manager = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the endpoint derived from the REST name.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the controller reachable at restName.
// When cert is non-nil it becomes the only trusted root for the connection,
// pinning TLS to the certificate retrieved during bootstrap.
func NewClient(restName string, cred credentials.Credential, cert *x509.Certificate, opts ...Option) *Client {
	c := &Client{
		baseURL: fmt.Sprintf("https://%s/networking/v1", restName),
		cred:    cred,
	}

	if c.httpClient == nil {
		transport := &http.Transport{}
		if cert != nil {
			pool := x509.NewCertPool()
			pool.AddCert(cert)
			transport.TLSClientConfig = &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12}
		}
		c.httpClient = &http.Client{Transport: transport}
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// resource is the controller's REST envelope.
type resource struct {
	ResourceID string `json:"resourceId"`
	Properties any    `json:"properties"`
}

type networkManagerProperties struct {
	MACPoolStart   string `json:"macPoolStart"`
	MACPoolEnd     string `json:"macPoolEnd"`
	CertThumbprint string `json:"certificateThumbprint"`
}

// ConfigureNetworkManager implements Manager.
func (c *Client) ConfigureNetworkManager(ctx context.Context, params NetworkManagerParams) error {
	return c.put(ctx, "/virtualNetworkManager", resource{
		ResourceID: "configuration",
		Properties: networkManagerProperties{
			MACPoolStart:   params.MACPoolStart,
			MACPoolEnd:     params.MACPoolEnd,
			CertThumbprint: params.CertThumbprint,
		},
	})
}

type loadBalancerManagerProperties struct {
	PrivateVIPPrefix string `json:"privateVipPrefix"`
	PublicVIPPrefix  string `json:"publicVipPrefix"`
}

// ConfigureLoadBalancerManager implements Manager.
func (c *Client) ConfigureLoadBalancerManager(ctx context.Context, params LoadBalancerManagerParams) error {
	return c.put(ctx, "/loadBalancerManagerConfig", resource{
		ResourceID: "config",
		Properties: loadBalancerManagerProperties{
			PrivateVIPPrefix: params.PrivateVIPPrefix,
			PublicVIPPrefix:  params.PublicVIPPrefix,
		},
	})
}

type subnetProperties struct {
	Prefix    string `json:"addressPrefix"`
	VLANID    int    `json:"vlanId"`
	Gateway   string `json:"defaultGateway"`
	PoolStart string `json:"ipPoolStart"`
	PoolEnd   string `json:"ipPoolEnd"`
}

// RegisterSubnet implements Manager.
func (c *Client) RegisterSubnet(ctx context.Context, params SubnetParams) error {
	return c.put(ctx, "/logicalNetworks/pa", resource{
		ResourceID: "pa",
		Properties: subnetProperties{
			Prefix:    params.Prefix,
			VLANID:    params.VLANID,
			Gateway:   params.Gateway,
			PoolStart: params.PoolStart,
			PoolEnd:   params.PoolEnd,
		},
	})
}

type hostProperties struct {
	PASubnetPrefix string `json:"paSubnetPrefix"`
	SwitchName     string `json:"virtualSwitch"`
	CertThumbprint string `json:"certificateThumbprint"`
}

// RegisterHost implements Manager.
func (c *Client) RegisterHost(ctx context.Context, params HostParams) error {
	return c.put(ctx, "/servers/"+params.Name, resource{
		ResourceID: params.Name,
		Properties: hostProperties{
			PASubnetPrefix: params.PASubnetPrefix,
			SwitchName:     params.SwitchName,
			CertThumbprint: params.CertThumbprint,
		},
	})
}

type muxProperties struct {
	PAIPAddress    string       `json:"paIpAddress"`
	ASN            uint32       `json:"localAsn"`
	Routers        []routerPeer `json:"routers"`
	CertThumbprint string       `json:"certificateThumbprint"`
}

type routerPeer struct {
	RouterIP string `json:"routerIpAddress"`
	ASN      uint32 `json:"peerAsn"`
}

// RegisterMux implements Manager.
func (c *Client) RegisterMux(ctx context.Context, params MuxParams) error {
	props := muxProperties{
		PAIPAddress:    params.PAIPAddress,
		ASN:            params.ASN,
		Routers:        make([]routerPeer, 0, len(params.Routers)),
		CertThumbprint: params.CertThumbprint,
	}
	for _, r := range params.Routers {
		props.Routers = append(props.Routers, routerPeer{RouterIP: r.RouterIP, ASN: r.ASN})
	}
	return c.put(ctx, "/loadBalancerMuxes/"+params.Name, resource{
		ResourceID: params.Name,
		Properties: props,
	})
}

type gatewayPoolProperties struct {
	Capacity       uint64 `json:"capacityKbps"`
	GRESubnet      string `json:"greSubnet,omitempty"`
	RedundantCount int    `json:"redundantGatewayCount"`
}

// CreateGatewayPool implements Manager.
func (c *Client) CreateGatewayPool(ctx context.Context, params GatewayPoolParams) error {
	return c.put(ctx, "/gatewayPools/"+params.Name, resource{
		ResourceID: params.Name,
		Properties: gatewayPoolProperties{
			Capacity:       params.Capacity,
			GRESubnet:      params.GRESubnet,
			RedundantCount: params.RedundantCount,
		},
	})
}

type gatewayProperties struct {
	PoolName       string `json:"poolRef"`
	FrontEndIP     string `json:"frontEndIpAddress"`
	FrontEndMAC    string `json:"frontEndMacAddress"`
	BackEndMAC     string `json:"backEndMacAddress"`
	CertThumbprint string `json:"certificateThumbprint"`
}

// RegisterGateway implements Manager.
func (c *Client) RegisterGateway(ctx context.Context, params GatewayParams) error {
	return c.put(ctx, "/gateways/"+params.Name, resource{
		ResourceID: params.Name,
		Properties: gatewayProperties{
			PoolName:       params.PoolName,
			FrontEndIP:     params.FrontEndIP,
			FrontEndMAC:    params.FrontEndMAC,
			BackEndMAC:     params.BackEndMAC,
			CertThumbprint: params.CertThumbprint,
		},
	})
}

type configurationState struct {
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// ConfigurationState implements Manager.
func (c *Client) ConfigurationState(ctx context.Context) error {
	var state configurationState
	if err := c.get(ctx, "/diagnostics/configurationState", &state); err != nil {
		return err
	}
	if state.Status != "Healthy" {
		return fmt.Errorf("controller reports %s configuration state: %s", state.Status, state.Detail)
	}
	return nil
}

func (c *Client) put(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cred.Username, c.cred.Password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("PUT %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("PUT %s: controller returned %s: %s", path, resp.Status, string(detail))
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.cred.Username, c.cred.Password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("GET %s: controller returned %s: %s", path, resp.Status, string(detail))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decode response: %w", path, err)
	}
	return nil
}
