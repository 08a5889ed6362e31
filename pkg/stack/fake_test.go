// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package stack

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/core"
	"github.com/oracle/oci-go-sdk/v65/functions"
	"github.com/oracle/oci-go-sdk/v65/identity"
)

// fakeCloud is an in-memory stand-in for the OCI control plane. It records
// every call so tests can assert on ordering, and it mimics the service's
// behavior of creating a default route table alongside each VCN.
type fakeCloud struct {
	calls []string

	vcns        []core.Vcn
	gateways    []core.InternetGateway
	routeTables []core.RouteTable
	subnets     []core.Subnet
	apps        []functions.ApplicationSummary
	fns         []functions.FunctionSummary

	availabilityDomains []identity.AvailabilityDomain
	compartmentPages    [][]identity.Compartment

	createdFunctionDetails []functions.CreateFunctionDetails
	updatedRouteRules      [][]core.RouteRule

	invokeEndpoints []string
	invokedPayloads []string
	invokeResponse  string
}

var (
	_ VirtualNetworkAPI      = (*fakeCloud)(nil)
	_ FunctionsManagementAPI = (*fakeCloud)(nil)
	_ IdentityAPI            = (*fakeCloud)(nil)
	_ FunctionsInvokeAPI     = (*fakeCloud)(nil)
)

func (f *fakeCloud) record(call string) {
	f.calls = append(f.calls, call)
}

// callsMatching returns the recorded calls with the given names, in order.
func (f *fakeCloud) callsMatching(names ...string) []string {
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}
	matched := []string{}
	for _, call := range f.calls {
		if wanted[call] {
			matched = append(matched, call)
		}
	}
	return matched
}

// === VirtualNetworkAPI ===

func (f *fakeCloud) CreateVcn(_ context.Context, request core.CreateVcnRequest) (core.CreateVcnResponse, error) {
	f.record("CreateVcn")
	vcn := core.Vcn{
		Id:             common.String(fmt.Sprintf("vcn-%d", len(f.vcns)+1)),
		CompartmentId:  request.CompartmentId,
		DisplayName:    request.DisplayName,
		CidrBlock:      request.CidrBlock,
		LifecycleState: core.VcnLifecycleStateAvailable,
	}
	f.vcns = append(f.vcns, vcn)

	// The service creates a default route table with every VCN.
	f.routeTables = append(f.routeTables, core.RouteTable{
		Id:             common.String(fmt.Sprintf("rt-%d", len(f.routeTables)+1)),
		CompartmentId:  request.CompartmentId,
		VcnId:          vcn.Id,
		DisplayName:    common.String("Default Route Table for " + *request.DisplayName),
		RouteRules:     []core.RouteRule{},
		LifecycleState: core.RouteTableLifecycleStateAvailable,
	})
	return core.CreateVcnResponse{Vcn: vcn}, nil
}

func (f *fakeCloud) GetVcn(_ context.Context, request core.GetVcnRequest) (core.GetVcnResponse, error) {
	f.record("GetVcn")
	for _, vcn := range f.vcns {
		if *vcn.Id == *request.VcnId {
			return core.GetVcnResponse{Vcn: vcn}, nil
		}
	}
	return core.GetVcnResponse{}, fmt.Errorf("vcn %s does not exist", *request.VcnId)
}

func (f *fakeCloud) ListVcns(_ context.Context, _ core.ListVcnsRequest) (core.ListVcnsResponse, error) {
	f.record("ListVcns")
	return core.ListVcnsResponse{Items: f.vcns}, nil
}

func (f *fakeCloud) DeleteVcn(_ context.Context, request core.DeleteVcnRequest) (core.DeleteVcnResponse, error) {
	f.record("DeleteVcn")
	for i, vcn := range f.vcns {
		if *vcn.Id == *request.VcnId {
			f.vcns = append(f.vcns[:i], f.vcns[i+1:]...)
			break
		}
	}
	return core.DeleteVcnResponse{}, nil
}

func (f *fakeCloud) CreateInternetGateway(_ context.Context, request core.CreateInternetGatewayRequest) (core.CreateInternetGatewayResponse, error) {
	f.record("CreateInternetGateway")
	gateway := core.InternetGateway{
		Id:             common.String(fmt.Sprintf("ig-%d", len(f.gateways)+1)),
		CompartmentId:  request.CompartmentId,
		VcnId:          request.VcnId,
		DisplayName:    request.DisplayName,
		IsEnabled:      request.IsEnabled,
		LifecycleState: core.InternetGatewayLifecycleStateAvailable,
	}
	f.gateways = append(f.gateways, gateway)
	return core.CreateInternetGatewayResponse{InternetGateway: gateway}, nil
}

func (f *fakeCloud) GetInternetGateway(_ context.Context, request core.GetInternetGatewayRequest) (core.GetInternetGatewayResponse, error) {
	f.record("GetInternetGateway")
	for _, gateway := range f.gateways {
		if *gateway.Id == *request.IgId {
			return core.GetInternetGatewayResponse{InternetGateway: gateway}, nil
		}
	}
	return core.GetInternetGatewayResponse{}, fmt.Errorf("internet gateway %s does not exist", *request.IgId)
}

func (f *fakeCloud) ListInternetGateways(_ context.Context, _ core.ListInternetGatewaysRequest) (core.ListInternetGatewaysResponse, error) {
	f.record("ListInternetGateways")
	return core.ListInternetGatewaysResponse{Items: f.gateways}, nil
}

func (f *fakeCloud) DeleteInternetGateway(_ context.Context, request core.DeleteInternetGatewayRequest) (core.DeleteInternetGatewayResponse, error) {
	f.record("DeleteInternetGateway")
	for i, gateway := range f.gateways {
		if *gateway.Id == *request.IgId {
			f.gateways = append(f.gateways[:i], f.gateways[i+1:]...)
			break
		}
	}
	return core.DeleteInternetGatewayResponse{}, nil
}

func (f *fakeCloud) ListRouteTables(_ context.Context, _ core.ListRouteTablesRequest) (core.ListRouteTablesResponse, error) {
	f.record("ListRouteTables")
	return core.ListRouteTablesResponse{Items: f.routeTables}, nil
}

func (f *fakeCloud) UpdateRouteTable(_ context.Context, request core.UpdateRouteTableRequest) (core.UpdateRouteTableResponse, error) {
	f.record("UpdateRouteTable")
	f.updatedRouteRules = append(f.updatedRouteRules, request.RouteRules)
	for i, routeTable := range f.routeTables {
		if *routeTable.Id == *request.RtId {
			f.routeTables[i].RouteRules = request.RouteRules
			return core.UpdateRouteTableResponse{RouteTable: f.routeTables[i]}, nil
		}
	}
	return core.UpdateRouteTableResponse{}, fmt.Errorf("route table %s does not exist", *request.RtId)
}

func (f *fakeCloud) CreateSubnet(_ context.Context, request core.CreateSubnetRequest) (core.CreateSubnetResponse, error) {
	f.record("CreateSubnet")
	subnet := core.Subnet{
		Id:                 common.String(fmt.Sprintf("subnet-%d", len(f.subnets)+1)),
		CompartmentId:      request.CompartmentId,
		VcnId:              request.VcnId,
		DisplayName:        request.DisplayName,
		AvailabilityDomain: request.AvailabilityDomain,
		CidrBlock:          request.CidrBlock,
		LifecycleState:     core.SubnetLifecycleStateAvailable,
	}
	f.subnets = append(f.subnets, subnet)
	return core.CreateSubnetResponse{Subnet: subnet}, nil
}

func (f *fakeCloud) GetSubnet(_ context.Context, request core.GetSubnetRequest) (core.GetSubnetResponse, error) {
	f.record("GetSubnet")
	for _, subnet := range f.subnets {
		if *subnet.Id == *request.SubnetId {
			return core.GetSubnetResponse{Subnet: subnet}, nil
		}
	}
	return core.GetSubnetResponse{}, fmt.Errorf("subnet %s does not exist", *request.SubnetId)
}

func (f *fakeCloud) ListSubnets(_ context.Context, _ core.ListSubnetsRequest) (core.ListSubnetsResponse, error) {
	f.record("ListSubnets")
	return core.ListSubnetsResponse{Items: f.subnets}, nil
}

func (f *fakeCloud) DeleteSubnet(_ context.Context, request core.DeleteSubnetRequest) (core.DeleteSubnetResponse, error) {
	f.record("DeleteSubnet")
	for i, subnet := range f.subnets {
		if *subnet.Id == *request.SubnetId {
			f.subnets = append(f.subnets[:i], f.subnets[i+1:]...)
			break
		}
	}
	return core.DeleteSubnetResponse{}, nil
}

// === FunctionsManagementAPI ===

func (f *fakeCloud) CreateApplication(_ context.Context, request functions.CreateApplicationRequest) (functions.CreateApplicationResponse, error) {
	f.record("CreateApplication")
	id := fmt.Sprintf("app-%d", len(f.apps)+1)
	f.apps = append(f.apps, functions.ApplicationSummary{
		Id:            common.String(id),
		CompartmentId: request.CompartmentId,
		DisplayName:   request.DisplayName,
	})
	return functions.CreateApplicationResponse{Application: functions.Application{
		Id:             common.String(id),
		CompartmentId:  request.CompartmentId,
		DisplayName:    request.DisplayName,
		SubnetIds:      request.SubnetIds,
		LifecycleState: functions.ApplicationLifecycleStateActive,
	}}, nil
}

func (f *fakeCloud) GetApplication(_ context.Context, request functions.GetApplicationRequest) (functions.GetApplicationResponse, error) {
	f.record("GetApplication")
	for _, app := range f.apps {
		if *app.Id == *request.ApplicationId {
			return functions.GetApplicationResponse{Application: functions.Application{
				Id:             app.Id,
				DisplayName:    app.DisplayName,
				LifecycleState: functions.ApplicationLifecycleStateActive,
			}}, nil
		}
	}
	return functions.GetApplicationResponse{}, fmt.Errorf("application %s does not exist", *request.ApplicationId)
}

func (f *fakeCloud) ListApplications(_ context.Context, _ functions.ListApplicationsRequest) (functions.ListApplicationsResponse, error) {
	f.record("ListApplications")
	return functions.ListApplicationsResponse{Items: f.apps}, nil
}

func (f *fakeCloud) DeleteApplication(_ context.Context, request functions.DeleteApplicationRequest) (functions.DeleteApplicationResponse, error) {
	f.record("DeleteApplication")
	for i, app := range f.apps {
		if *app.Id == *request.ApplicationId {
			f.apps = append(f.apps[:i], f.apps[i+1:]...)
			break
		}
	}
	return functions.DeleteApplicationResponse{}, nil
}

func (f *fakeCloud) CreateFunction(_ context.Context, request functions.CreateFunctionRequest) (functions.CreateFunctionResponse, error) {
	f.record("CreateFunction")
	f.createdFunctionDetails = append(f.createdFunctionDetails, request.CreateFunctionDetails)
	id := fmt.Sprintf("fn-%d", len(f.fns)+1)
	f.fns = append(f.fns, functions.FunctionSummary{
		Id:             common.String(id),
		ApplicationId:  request.ApplicationId,
		DisplayName:    request.DisplayName,
		Image:          request.Image,
		InvokeEndpoint: common.String("https://" + id + ".invoke.example.com"),
	})
	return functions.CreateFunctionResponse{Function: functions.Function{
		Id:             common.String(id),
		ApplicationId:  request.ApplicationId,
		DisplayName:    request.DisplayName,
		Image:          request.Image,
		LifecycleState: functions.FunctionLifecycleStateActive,
	}}, nil
}

func (f *fakeCloud) GetFunction(_ context.Context, request functions.GetFunctionRequest) (functions.GetFunctionResponse, error) {
	f.record("GetFunction")
	for _, fn := range f.fns {
		if *fn.Id == *request.FunctionId {
			return functions.GetFunctionResponse{Function: functions.Function{
				Id:             fn.Id,
				DisplayName:    fn.DisplayName,
				LifecycleState: functions.FunctionLifecycleStateActive,
			}}, nil
		}
	}
	return functions.GetFunctionResponse{}, fmt.Errorf("function %s does not exist", *request.FunctionId)
}

func (f *fakeCloud) ListFunctions(_ context.Context, _ functions.ListFunctionsRequest) (functions.ListFunctionsResponse, error) {
	f.record("ListFunctions")
	return functions.ListFunctionsResponse{Items: f.fns}, nil
}

func (f *fakeCloud) DeleteFunction(_ context.Context, request functions.DeleteFunctionRequest) (functions.DeleteFunctionResponse, error) {
	f.record("DeleteFunction")
	for i, fn := range f.fns {
		if *fn.Id == *request.FunctionId {
			f.fns = append(f.fns[:i], f.fns[i+1:]...)
			break
		}
	}
	return functions.DeleteFunctionResponse{}, nil
}

// === IdentityAPI ===

func (f *fakeCloud) ListCompartments(_ context.Context, request identity.ListCompartmentsRequest) (identity.ListCompartmentsResponse, error) {
	f.record("ListCompartments")
	if len(f.compartmentPages) == 0 {
		return identity.ListCompartmentsResponse{}, nil
	}

	page := 0
	if request.Page != nil {
		fmt.Sscanf(*request.Page, "%d", &page)
	}
	resp := identity.ListCompartmentsResponse{Items: f.compartmentPages[page]}
	if page+1 < len(f.compartmentPages) {
		resp.OpcNextPage = common.String(fmt.Sprintf("%d", page+1))
	}
	return resp, nil
}

func (f *fakeCloud) ListAvailabilityDomains(_ context.Context, _ identity.ListAvailabilityDomainsRequest) (identity.ListAvailabilityDomainsResponse, error) {
	f.record("ListAvailabilityDomains")
	return identity.ListAvailabilityDomainsResponse{Items: f.availabilityDomains}, nil
}

// === FunctionsInvokeAPI ===

func (f *fakeCloud) InvokeFunction(_ context.Context, request functions.InvokeFunctionRequest) (functions.InvokeFunctionResponse, error) {
	f.record("InvokeFunction")
	payload := ""
	if request.InvokeFunctionBody != nil {
		body, err := io.ReadAll(request.InvokeFunctionBody)
		if err != nil {
			return functions.InvokeFunctionResponse{}, err
		}
		payload = string(body)
	}
	f.invokedPayloads = append(f.invokedPayloads, payload)
	return functions.InvokeFunctionResponse{
		Content: io.NopCloser(strings.NewReader(f.invokeResponse)),
	}, nil
}
