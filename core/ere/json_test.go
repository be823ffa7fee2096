package ere

import (
	"encoding/json"
	"testing"
)

func TestSnapshot(t *testing.T) {
	doc := mustLoad(t, LoaderOptions{}, testDocument)
	snap := doc.Snapshot()

	if snap.DocID != "DOC1" || snap.SourceType != "multi_post" {
		t.Errorf("header = %s/%s, want DOC1/multi_post", snap.DocID, snap.SourceType)
	}
	if len(snap.Entities) != 2 || len(snap.Fillers) != 2 || len(snap.Relations) != 1 || len(snap.Events) != 1 {
		t.Fatalf("section sizes = %d/%d/%d/%d, want 2/2/1/1",
			len(snap.Entities), len(snap.Fillers), len(snap.Relations), len(snap.Events))
	}

	m := snap.Entities[0].Mentions[0]
	if m.Extent.Start != 10 || m.Extent.End != 14 || m.Extent.Text != "Obama" {
		t.Errorf("extent = %+v, want {10 14 Obama}", m.Extent)
	}
	if m.Head != nil {
		t.Error("mention without nom_head should snapshot a nil head")
	}
	if snap.Entities[0].Mentions[1].Head == nil {
		t.Error("mention with nom_head should snapshot its head")
	}

	if snap.Fillers[0].Time == nil || *snap.Fillers[0].Time != "2009-01-20" {
		t.Error("temporal filler should snapshot its nom_time")
	}
	if snap.Fillers[1].Time != nil {
		t.Error("filler without nom_time should snapshot a nil time")
	}

	rm := snap.Relations[0].Mentions[0]
	if rm.Arg1 == nil || rm.Arg1.Kind != "entity" {
		t.Fatalf("Arg1 = %+v, want entity argument", rm.Arg1)
	}
	if rm.Arg1.EntityID != "ent-1" || rm.Arg1.EntityMentionID != "m-1" {
		t.Errorf("Arg1 ids = %s/%s, want ent-1/m-1", rm.Arg1.EntityID, rm.Arg1.EntityMentionID)
	}
	if rm.Arg2.Realis != LinkRealisUnspecified {
		t.Errorf("Arg2 realis = %v, want unspecified", rm.Arg2.Realis)
	}

	em := snap.Events[0].Mentions[0]
	if len(em.Arguments) != 3 {
		t.Fatalf("len(Arguments) = %d, want 3", len(em.Arguments))
	}
	if em.Arguments[1].Kind != "filler" || em.Arguments[1].FillerID != "f-2" {
		t.Errorf("crime argument = %+v, want filler f-2", em.Arguments[1])
	}
}

func TestDocumentMarshalJSON(t *testing.T) {
	doc := mustLoad(t, LoaderOptions{}, testDocument)

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded DocumentJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.DocID != "DOC1" {
		t.Errorf("doc_id = %q, want %q", decoded.DocID, "DOC1")
	}
	if len(decoded.Entities) != 2 {
		t.Errorf("len(entities) = %d, want 2", len(decoded.Entities))
	}
	if decoded.Events[0].Mentions[0].Trigger.Text != "arrested" {
		t.Error("event trigger should survive the JSON round trip")
	}
}

func TestArgumentRealisJSONForm(t *testing.T) {
	doc := mustLoad(t, LoaderOptions{}, testDocument)

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	relations := generic["relations"].([]any)
	mention := relations[0].(map[string]any)["mentions"].([]any)[0].(map[string]any)
	arg1 := mention["arg1"].(map[string]any)
	if arg1["realis"] != "REALIS" {
		t.Errorf("arg1 realis = %v, want REALIS", arg1["realis"])
	}
	arg2 := mention["arg2"].(map[string]any)
	if _, present := arg2["realis"]; present {
		t.Error("unspecified realis should be omitted from JSON")
	}
}
