package mcpserver

// SceneFormatContract describes the persisted drawing payload for LLM
// consumers reading scenes through the MCP tools.
const SceneFormatContract = `# Easel Scene Format Contract

Every drawing record carries a scene payload with this structure.

## Structure

` + "```" + `json
{
  "elements": [
    {
      "id": "el-1",
      "type": "rectangle",
      "x": 10, "y": 20, "width": 100, "height": 50,
      "angle": 0,
      "strokeColor": "#1e1e1e",
      "backgroundColor": "transparent",
      "fillStyle": "solid",
      "strokeWidth": 2,
      "roughness": 1,
      "opacity": 100
    }
  ],
  "appState": {
    "viewBackgroundColor": "#ffffff",
    "currentItemStrokeColor": "#1e1e1e",
    "currentItemBackgroundColor": "transparent",
    "currentItemFillStyle": "solid",
    "currentItemStrokeWidth": 2,
    "currentItemRoughness": 1
  }
}
` + "```" + `

## Rules

1. **Element order is stacking order**, bottom first. Reordering the
   array changes the drawing.
2. **Types:** rectangle, ellipse, diamond, line, arrow, freedraw, text,
   image.
3. **Linear elements** (line, arrow, freedraw) carry a ` + "`" + `points` + "`" + ` array of
   {x, y} vertices relative to the element's (x, y).
4. **Text elements** carry ` + "`" + `text` + "`" + ` and ` + "`" + `fontSize` + "`" + `.
5. **Image elements** reference binary data by ` + "`" + `fileId` + "`" + `; the bytes are
   not part of the scene payload.
6. **Colors** are CSS hex strings; ` + "`" + `transparent` + "`" + ` means no fill.
7. **appState holds exactly the six restricted fields** shown above.
   Transient canvas state (selection, scroll, zoom, active tool) is never
   persisted.
`
