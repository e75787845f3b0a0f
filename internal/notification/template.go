package notification

import (
	"strings"
	"text/template"
)

// Layout of the notification e-mail.
const (
	styleMaxWidth              = 600
	stylePadding               = 20
	styleHeaderFontSize        = 24
	styleContentPadding        = 30
	styleDetailRowMarginBottom = 15
	styleDetailRowPadding      = 10
	styleDetailRowBorderLeft   = 4
	styleLabelMinWidth         = 120
)

// text/template on purpose: the data is embedded as-is.
var notificationTmpl = template.Must(template.New("notification").Parse(notificationHTML))

var testTmpl = template.Must(template.New("test").Parse(testHTML))

type styleValues struct {
	MaxWidth              int
	Padding               int
	HeaderFontSize        int
	ContentPadding        int
	DetailRowMarginBottom int
	DetailRowPadding      int
	DetailRowBorderLeft   int
	LabelMinWidth         int
}

var defaultStyle = styleValues{
	MaxWidth:              styleMaxWidth,
	Padding:               stylePadding,
	HeaderFontSize:        styleHeaderFontSize,
	ContentPadding:        styleContentPadding,
	DetailRowMarginBottom: styleDetailRowMarginBottom,
	DetailRowPadding:      styleDetailRowPadding,
	DetailRowBorderLeft:   styleDetailRowBorderLeft,
	LabelMinWidth:         styleLabelMinWidth,
}

type notificationView struct {
	TemplateData
	Style styleValues
	Year  int
}

func renderNotification(data TemplateData, year int) string {
	var b strings.Builder
	// Execution over plain strings cannot fail.
	_ = notificationTmpl.Execute(&b, notificationView{TemplateData: data, Style: defaultStyle, Year: year})
	return b.String()
}

func renderTest(date string) string {
	var b strings.Builder
	_ = testTmpl.Execute(&b, struct{ Date string }{date})
	return b.String()
}

const notificationHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <style>
    body {
      font-family: Arial, sans-serif;
      line-height: 1.6;
      color: #333;
      max-width: {{.Style.MaxWidth}}px;
      margin: 0 auto;
      padding: {{.Style.Padding}}px;
      background-color: #f4f4f4;
    }
    .container {
      background-color: #fff;
      border-radius: 8px;
      overflow: hidden;
      box-shadow: 0 2px 10px rgba(0,0,0,0.1);
    }
    .header {
      background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
      color: white;
      padding: {{.Style.Padding}}px;
      text-align: center;
    }
    .header h2 {
      margin: 0;
      font-size: {{.Style.HeaderFontSize}}px;
    }
    .content {
      padding: {{.Style.ContentPadding}}px;
    }
    .content h3 {
      color: #333;
      margin-top: 0;
      margin-bottom: 20px;
    }
    .detail-row {
      margin-bottom: {{.Style.DetailRowMarginBottom}}px;
      padding: {{.Style.DetailRowPadding}}px;
      background-color: #f8f9fa;
      border-left: {{.Style.DetailRowBorderLeft}}px solid #667eea;
      border-radius: 4px;
    }
    .label {
      font-weight: bold;
      color: #555;
      display: inline-block;
      min-width: {{.Style.LabelMinWidth}}px;
    }
    .value {
      color: #333;
    }
    .footer {
      background-color: #f8f9fa;
      padding: 20px;
      text-align: center;
      font-size: 12px;
      color: #777;
      border-top: 1px solid #eee;
    }
    .timestamp {
      background-color: #e3f2fd;
      color: #1976d2;
      padding: 5px 10px;
      border-radius: 15px;
      font-weight: bold;
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h2>🔔 Sistema de Reportes de Quejas</h2>
    </div>
    <div class="content">
      <h3>Notificación de Solicitud de Reporte</h3>
      <div class="detail-row">
        <span class="label">📋 Acción realizada:</span>
        <span class="value">{{.Action}}</span>
      </div>
      <div class="detail-row">
        <span class="label">🕒 Fecha y hora:</span>
        <span class="value timestamp">{{.Timestamp}}</span>
      </div>
      <div class="detail-row">
        <span class="label">🌐 Dirección IP:</span>
        <span class="value">{{.IP}}</span>
      </div>
      <div class="detail-row">
        <span class="label">🔗 URL solicitada:</span>
        <span class="value">{{.URL}}</span>
      </div>
      <div class="detail-row">
        <span class="label">📡 Método HTTP:</span>
        <span class="value">{{.Method}}</span>
      </div>
      <div class="detail-row">
        <span class="label">🖥️ User-Agent:</span>
        <span class="value" style="word-break: break-all;">{{.UserAgent}}</span>
      </div>
    </div>
    <div class="footer">
      <p>✉️ Este es un mensaje automático, por favor no responder.</p>
      <p>Sistema de Gestión de Quejas - {{.Year}}</p>
    </div>
  </div>
</body>
</html>
`

const testHTML = `<h2>✅ Prueba de Configuración Exitosa</h2>
<p>Este correo confirma que el servicio de email está funcionando correctamente.</p>
<p><strong>Fecha:</strong> {{.Date}}</p>
<p><strong>Servicio:</strong> Gmail</p>
`
