package types_test

import (
	"testing"

	"github.com/doorstep-hq/doorstep/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestSignatureStatus_IsSignable(t *testing.T) {
	tests := []struct {
		status types.SignatureStatus
		want   bool
	}{
		{types.SignatureStatusPending, true},
		{types.SignatureStatusSent, true},
		{types.SignatureStatusViewed, true},
		{types.SignatureStatusSigned, false},
		{types.SignatureStatusDeclined, false},
		{types.SignatureStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			if tt.want {
				gt.B(t, tt.status.IsSignable()).True()
			} else {
				gt.B(t, tt.status.IsSignable()).False()
			}
		})
	}
}

func TestParseTriggerType(t *testing.T) {
	for _, trigger := range types.AllTriggerTypes() {
		got, err := types.ParseTriggerType(trigger.String())
		gt.NoError(t, err)
		gt.Value(t, got).Equal(trigger)
	}

	_, err := types.ParseTriggerType("task_deleted")
	gt.Error(t, err)

	_, err = types.ParseTriggerType("")
	gt.Error(t, err)
}

func TestParseActionType(t *testing.T) {
	for _, action := range types.AllActionTypes() {
		got, err := types.ParseActionType(action.String())
		gt.NoError(t, err)
		gt.Value(t, got).Equal(action)
	}

	_, err := types.ParseActionType("delete_task")
	gt.Error(t, err)
}

func TestParseProjectStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    types.ProjectStatus
		wantErr bool
	}{
		{"draft", types.ProjectStatusDraft, false},
		{"pending", types.ProjectStatusPending, false},
		{"active", types.ProjectStatusActive, false},
		{"completed", types.ProjectStatusCompleted, false},
		{"archived", types.ProjectStatusArchived, false},
		{"open", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := types.ParseProjectStatus(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Value(t, got).Equal(tt.want)
		})
	}
}

func TestParseExecStatus(t *testing.T) {
	for _, status := range types.AllExecStatuses() {
		got, err := types.ParseExecStatus(status.String())
		gt.NoError(t, err)
		gt.Value(t, got).Equal(status)
	}

	_, err := types.ParseExecStatus("pending")
	gt.Error(t, err)
}

func TestParseRecipientType(t *testing.T) {
	got, err := types.ParseRecipientType("client")
	gt.NoError(t, err)
	gt.Value(t, got).Equal(types.RecipientClient)

	got, err = types.ParseRecipientType("staff")
	gt.NoError(t, err)
	gt.Value(t, got).Equal(types.RecipientStaff)

	_, err = types.ParseRecipientType("manager")
	gt.Error(t, err)
}

func TestParseSignatureMethod(t *testing.T) {
	got, err := types.ParseSignatureMethod("drawn")
	gt.NoError(t, err)
	gt.Value(t, got).Equal(types.SignatureMethodDrawn)

	got, err = types.ParseSignatureMethod("typed")
	gt.NoError(t, err)
	gt.Value(t, got).Equal(types.SignatureMethodTyped)

	_, err = types.ParseSignatureMethod("scanned")
	gt.Error(t, err)
}
