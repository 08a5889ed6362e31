// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package client

import (
	"sync"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/core"
	"github.com/oracle/oci-go-sdk/v65/functions"
	"github.com/oracle/oci-go-sdk/v65/identity"
	"github.com/platform-engineering-labs/fnstack/pkg/config"
)

// Clients manages OCI service clients with lazy initialization.
type Clients struct {
	provider common.ConfigurationProvider

	mu                  sync.Mutex
	virtualNetwork      *core.VirtualNetworkClient
	identity            *identity.IdentityClient
	functionsManagement *functions.FunctionsManagementClient
	invokers            map[string]*functions.FunctionsInvokeClient
}

// NewClients creates a new Clients instance with the given configuration.
func NewClients(cfg *config.Config) (*Clients, error) {
	provider, err := cfg.ToConfigProvider()
	if err != nil {
		return nil, err
	}

	return &Clients{provider: provider}, nil
}

// GetVirtualNetworkClient returns a cached or newly created VirtualNetworkClient.
func (c *Clients) GetVirtualNetworkClient() (*core.VirtualNetworkClient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.virtualNetwork == nil {
		client, err := core.NewVirtualNetworkClientWithConfigurationProvider(c.provider)
		if err != nil {
			return nil, err
		}
		c.virtualNetwork = &client
	}
	return c.virtualNetwork, nil
}

// GetIdentityClient returns a cached or newly created IdentityClient.
func (c *Clients) GetIdentityClient() (*identity.IdentityClient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.identity == nil {
		client, err := identity.NewIdentityClientWithConfigurationProvider(c.provider)
		if err != nil {
			return nil, err
		}
		c.identity = &client
	}
	return c.identity, nil
}

// GetFunctionsManagementClient returns a cached or newly created FunctionsManagementClient.
func (c *Clients) GetFunctionsManagementClient() (*functions.FunctionsManagementClient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.functionsManagement == nil {
		client, err := functions.NewFunctionsManagementClientWithConfigurationProvider(c.provider)
		if err != nil {
			return nil, err
		}
		c.functionsManagement = &client
	}
	return c.functionsManagement, nil
}

// GetFunctionsInvokeClient returns a FunctionsInvokeClient bound to the given
// invoke endpoint. Each function exposes its own endpoint, so clients are
// cached per endpoint.
func (c *Clients) GetFunctionsInvokeClient(endpoint string) (*functions.FunctionsInvokeClient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.invokers == nil {
		c.invokers = make(map[string]*functions.FunctionsInvokeClient)
	}
	if cached, ok := c.invokers[endpoint]; ok {
		return cached, nil
	}

	client, err := functions.NewFunctionsInvokeClientWithConfigurationProvider(c.provider, endpoint)
	if err != nil {
		return nil, err
	}
	c.invokers[endpoint] = &client
	return &client, nil
}

// GetConfigurationProvider returns the underlying OCI ConfigurationProvider.
func (c *Clients) GetConfigurationProvider() common.ConfigurationProvider {
	return c.provider
}
