// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package stack

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/functions"
	"github.com/platform-engineering-labs/fnstack/pkg/lifecycle"
)

// === Application ===

func (s *Stack) createApplication(ctx context.Context, compartmentID string, subnetIDs []string) (functions.Application, error) {
	name := ApplicationName(s.namePrefix)

	resp, err := s.fnMgmt.CreateApplication(ctx, functions.CreateApplicationRequest{
		CreateApplicationDetails: functions.CreateApplicationDetails{
			CompartmentId: common.String(compartmentID),
			DisplayName:   common.String(name),
			SubnetIds:     subnetIDs,
		},
	})
	if err != nil {
		return functions.Application{}, fmt.Errorf("failed to create application: %w", err)
	}

	err = lifecycle.WaitForState(ctx, s.wait, func(ctx context.Context) (string, error) {
		get, err := s.fnMgmt.GetApplication(ctx, functions.GetApplicationRequest{ApplicationId: resp.Id})
		if err != nil {
			return "", err
		}
		return string(get.LifecycleState), nil
	}, string(functions.ApplicationLifecycleStateActive))
	if err != nil {
		return functions.Application{}, fmt.Errorf("waiting for application %s: %w", *resp.Id, err)
	}

	s.log.Info("created application", "name", name, "id", *resp.Id)
	return resp.Application, nil
}

func (s *Stack) lookupApplication(ctx context.Context, compartmentID string) (functions.ApplicationSummary, error) {
	name := ApplicationName(s.namePrefix)
	var matches []functions.ApplicationSummary

	req := functions.ListApplicationsRequest{
		CompartmentId: common.String(compartmentID),
		DisplayName:   common.String(name),
	}
	for {
		resp, err := s.fnMgmt.ListApplications(ctx, req)
		if err != nil {
			return functions.ApplicationSummary{}, fmt.Errorf("failed to list applications: %w", err)
		}
		for _, app := range resp.Items {
			if app.DisplayName != nil && *app.DisplayName == name {
				matches = append(matches, app)
			}
		}
		if resp.OpcNextPage == nil {
			break
		}
		req.Page = resp.OpcNextPage
	}

	return uniqueMatch(matches, "application", name)
}

// === Function ===

func (s *Stack) createFunction(ctx context.Context, applicationID string) (functions.Function, error) {
	name := FunctionName(s.namePrefix)

	resp, err := s.fnMgmt.CreateFunction(ctx, functions.CreateFunctionRequest{
		CreateFunctionDetails: functions.CreateFunctionDetails{
			ApplicationId:    common.String(applicationID),
			DisplayName:      common.String(name),
			Image:            common.String(s.image),
			MemoryInMBs:      common.Int64(functionMemoryInMBs),
			TimeoutInSeconds: common.Int(functionTimeoutInSeconds),
		},
	})
	if err != nil {
		return functions.Function{}, fmt.Errorf("failed to create function: %w", err)
	}

	err = lifecycle.WaitForState(ctx, s.wait, func(ctx context.Context) (string, error) {
		get, err := s.fnMgmt.GetFunction(ctx, functions.GetFunctionRequest{FunctionId: resp.Id})
		if err != nil {
			return "", err
		}
		return string(get.LifecycleState), nil
	}, string(functions.FunctionLifecycleStateActive))
	if err != nil {
		return functions.Function{}, fmt.Errorf("waiting for function %s: %w", *resp.Id, err)
	}

	s.log.Info("created function", "name", name, "id", *resp.Id)
	return resp.Function, nil
}

func (s *Stack) lookupFunction(ctx context.Context, applicationID string) (functions.FunctionSummary, error) {
	name := FunctionName(s.namePrefix)
	var matches []functions.FunctionSummary

	req := functions.ListFunctionsRequest{
		ApplicationId: common.String(applicationID),
		DisplayName:   common.String(name),
	}
	for {
		resp, err := s.fnMgmt.ListFunctions(ctx, req)
		if err != nil {
			return functions.FunctionSummary{}, fmt.Errorf("failed to list functions: %w", err)
		}
		for _, fn := range resp.Items {
			if fn.DisplayName != nil && *fn.DisplayName == name {
				matches = append(matches, fn)
			}
		}
		if resp.OpcNextPage == nil {
			break
		}
		req.Page = resp.OpcNextPage
	}

	return uniqueMatch(matches, "function", name)
}

func (s *Stack) removeFunction(ctx context.Context, applicationID string) (Outcome, error) {
	fn, err := s.lookupFunction(ctx, applicationID)
	if errors.Is(err, ErrNotFound) {
		return OutcomeNotFound, nil
	}
	if err != nil {
		return 0, err
	}

	if _, err := s.fnMgmt.DeleteFunction(ctx, functions.DeleteFunctionRequest{
		FunctionId: fn.Id,
	}); err != nil {
		if isServiceNotFound(err) {
			return OutcomeNotFound, nil
		}
		return 0, fmt.Errorf("failed to delete function %s: %w", *fn.Id, err)
	}
	return OutcomeDeleted, nil
}

// invokeFunction binds an invoke client to the function's dedicated endpoint
// and issues one synchronous request carrying the payload.
func (s *Stack) invokeFunction(ctx context.Context, fn functions.FunctionSummary, content string) (string, error) {
	if fn.InvokeEndpoint == nil || *fn.InvokeEndpoint == "" {
		return "", fmt.Errorf("function %s has no invoke endpoint", *fn.Id)
	}

	invoker, err := s.invokerFor(*fn.InvokeEndpoint)
	if err != nil {
		return "", fmt.Errorf("failed to get FunctionsInvoke client: %w", err)
	}

	resp, err := invoker.InvokeFunction(ctx, functions.InvokeFunctionRequest{
		FunctionId:         fn.Id,
		InvokeFunctionBody: io.NopCloser(strings.NewReader(content)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to invoke function %s: %w", *fn.Id, err)
	}
	if resp.Content == nil {
		return "", nil
	}
	defer resp.Content.Close()

	body, err := io.ReadAll(resp.Content)
	if err != nil {
		return "", fmt.Errorf("failed to read invocation response: %w", err)
	}
	return string(body), nil
}
