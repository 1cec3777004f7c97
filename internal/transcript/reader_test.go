package transcript

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/actionlog/internal/engine/classifier"
	"github.com/crimson-sun/actionlog/internal/model"
	"github.com/crimson-sun/actionlog/internal/session"
)

const jsonlTranscript = `
# session start
{"type":"state","state":{"scene_base":{"x":3150,"y":3150,"plane":0},"player":{"x":3200,"y":3195,"plane":0}}}
{"type":"tick","tick":100,"state":{"prayers":["PIETY"]}}
{"type":"menu_click","action":"NPC_FIRST_OPTION","option":"Attack","target":"Goblin","id":42,"param0":50,"param1":50}
not json
{"type":"projectile_seen","projectile":{"identity":7,"id":1465,"start_cycle":10,"end_cycle":20}}
`

const yamlTranscript = `type: state
state:
  scene_base: {x: 3150, y: 3150, plane: 0}
  npcs:
    - {identity: 1, name: Cow, id: 2790, location: {x: 3201, y: 3201, plane: 0}}
---
type: tick
tick: 5
state:
  prayers: [PROTECT_FROM_MELEE, RIGOUR]
---
type: menu_click
action: WALK
option: Walk here
param0: -1
param1: -1
---
type: chat
speaker: Zezima
message: hello
channel: public
`

func TestReadJSONL(t *testing.T) {
	var recs []Record
	for rec := range Read(context.Background(), strings.NewReader(jsonlTranscript), FormatJSONL) {
		recs = append(recs, rec)
	}
	require.Len(t, recs, 5)

	assert.Equal(t, TypeState, recs[0].Type)
	assert.Equal(t, 100, recs[1].Tick)
	require.NotNil(t, recs[1].State.Prayers)
	assert.Equal(t, []model.Prayer{model.Piety}, *recs[1].State.Prayers)

	ev, err := recs[2].Event()
	require.NoError(t, err)
	assert.Equal(t, model.MenuClick{Action: model.MenuNPCFirst, Option: "Attack", Target: "Goblin", ID: 42, Param0: 50, Param1: 50}, ev)

	assert.Error(t, recs[3].Err)
	assert.Equal(t, 6, recs[3].Line)

	ev, err = recs[4].Event()
	require.NoError(t, err)
	p := ev.(model.ProjectileSeen)
	assert.Nil(t, p.Position)
	assert.Equal(t, uint64(7), p.Identity)
}

func TestDecodeJSONMenuCodes(t *testing.T) {
	tests := []struct {
		name   string
		action string
		want   model.MenuAction
		cat    model.Category
	}{
		{"numeric npc option", `9`, model.MenuNPCFirst, model.CategoryNPCInteraction},
		{"numeric unlisted code", `2000`, model.MenuAction(2000), model.CategoryMenuClick},
		{"code name", `"ITEM_FIFTH_OPTION"`, model.MenuItemFifth, model.CategoryItemDrop},
		{"quoted number", `"30"`, model.MenuWidgetContinue, model.CategoryWidgetContinue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := DecodeJSON([]byte(`{"type":"menu_click","action":` + tt.action + `,"option":"Drop","target":"Goblin","id":42}`))
			require.NoError(t, err)
			ev, err := rec.Event()
			require.NoError(t, err)
			click := ev.(model.MenuClick)
			assert.Equal(t, tt.want, click.Action)
			assert.Equal(t, tt.cat, classifier.Family(click.Action))
		})
	}
}

func TestDecodeJSONRejectsBadMenuCode(t *testing.T) {
	_, err := DecodeJSON([]byte(`{"type":"menu_click","action":"NOT_A_CODE"}`))
	assert.Error(t, err)
	_, err = DecodeJSON([]byte(`{"type":"menu_click","action":1.5}`))
	assert.Error(t, err)
}

func TestReadYAML(t *testing.T) {
	recs, err := ReadAll(strings.NewReader(yamlTranscript), FormatYAML)
	require.NoError(t, err)
	require.Len(t, recs, 4)

	require.NotNil(t, recs[0].State.NPCs)
	assert.Equal(t, "Cow", (*recs[0].State.NPCs)[0].Name)
	assert.Equal(t, []model.Prayer{model.ProtectFromMelee, model.Rigour}, *recs[1].State.Prayers)

	ev, err := recs[2].Event()
	require.NoError(t, err)
	assert.Equal(t, model.MenuWalk, ev.(model.MenuClick).Action)

	ev, err = recs[3].Event()
	require.NoError(t, err)
	assert.Equal(t, model.Chat{Speaker: "Zezima", Message: "hello", Type: model.ChatPublic}, ev)
}

func TestReadAllJoinsErrors(t *testing.T) {
	recs, err := ReadAll(strings.NewReader("{\"type\":\"tick\",\"tick\":1}\n{bad\n"), FormatJSONL)
	assert.Len(t, recs, 1)
	assert.ErrorContains(t, err, "line 2")
}

func TestEventErrors(t *testing.T) {
	_, err := Record{Type: "entity_spawn"}.Event()
	assert.Error(t, err)
	_, err = Record{Type: "teleport"}.Event()
	assert.ErrorContains(t, err, "unknown record type")

	ev, err := Record{Type: TypeState}.Event()
	assert.NoError(t, err)
	assert.Nil(t, ev)
}

func TestApplyAdvancesTick(t *testing.T) {
	sess := session.NewReplay()
	Record{Type: "tick", Tick: 42}.Apply(sess)
	assert.Equal(t, 42, sess.Tick())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFor("session.yml"))
	assert.Equal(t, FormatJSONL, FormatFor("session.jsonl"))

	f, err := ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
