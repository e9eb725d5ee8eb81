package provider

import (
	"testing"

	"google.golang.org/genai"
)

func TestBuildContents_RoleMapping(t *testing.T) {
	messages := []Message{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
	}

	system, contents := buildContents(messages, nil)
	if system != nil {
		t.Errorf("expected no system instruction, got %+v", system)
	}
	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	if contents[0].Role != genai.RoleUser {
		t.Errorf("expected role user, got %q", contents[0].Role)
	}
	if contents[1].Role != genai.RoleModel {
		t.Errorf("expected role model, got %q", contents[1].Role)
	}
}

func TestBuildContents_SystemExtracted(t *testing.T) {
	messages := []Message{
		{Role: RoleSystem, Content: "persona"},
		{Role: RoleUser, Content: "hi"},
	}

	system, contents := buildContents(messages, nil)
	if system == nil {
		t.Fatal("expected system instruction")
	}
	if system.Parts[0].Text != "persona" {
		t.Errorf("expected persona, got %q", system.Parts[0].Text)
	}
	if len(contents) != 1 {
		t.Fatalf("system message must not stay in contents, got %d entries", len(contents))
	}
}

func TestBuildContents_ImagesOnLastUserMessageOnly(t *testing.T) {
	messages := []Message{
		{Role: RoleUser, Content: "first"},
		{Role: RoleAssistant, Content: "reply"},
		{Role: RoleUser, Content: "look"},
	}
	images := []ImageAttachment{
		{Data: []byte{1, 2, 3}, MIMEType: "image/png"},
	}

	_, contents := buildContents(messages, images)
	if len(contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(contents))
	}

	if len(contents[0].Parts) != 1 || contents[0].Parts[0].InlineData != nil {
		t.Errorf("first message must not carry image parts: %+v", contents[0].Parts)
	}

	last := contents[2]
	if len(last.Parts) != 2 {
		t.Fatalf("expected text + image parts on last message, got %d", len(last.Parts))
	}
	if last.Parts[0].Text != "look" {
		t.Errorf("expected text part first, got %+v", last.Parts[0])
	}
	blob := last.Parts[1].InlineData
	if blob == nil || blob.MIMEType != "image/png" {
		t.Errorf("expected inline image part, got %+v", last.Parts[1])
	}
}

func TestBuildContents_ImageWithoutText(t *testing.T) {
	messages := []Message{
		{Role: RoleUser, Content: ""},
	}
	images := []ImageAttachment{
		{Data: []byte{9}, MIMEType: "image/jpeg"},
	}

	_, contents := buildContents(messages, images)
	if len(contents[0].Parts) != 1 {
		t.Fatalf("expected only an image part, got %d parts", len(contents[0].Parts))
	}
	if contents[0].Parts[0].InlineData == nil {
		t.Error("expected inline image part")
	}
}
