// Package event: 수신된 플랫폼 이벤트의 분류(Classification)를 담당한다.
// 큐에는 수신 원본 페이로드를 바이트 그대로 적재해야 하므로, 구조체 디코딩 대신
// 원본 JSON에 대한 필드 존재 검사(gjson)로 분류를 수행한다.
package event

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Kind: 수신 이벤트의 처리 경로를 나타내는 분류 결과
type Kind int

const (
	// KindCallback: callback_query가 존재. 원본 그대로 큐에 적재한다.
	KindCallback Kind = iota
	// KindVoice: 음성/오디오 첨부가 존재. 변환 후 text를 치환하여 적재한다.
	KindVoice
	// KindText: 직접 텍스트 메시지. 원본 그대로 큐에 적재한다.
	KindText
	// KindUnsupported: 지원하지 않는 형태. 적재하지 않고 폴백 안내를 회신한다.
	KindUnsupported
)

// String 는 동작을 수행한다.
func (k Kind) String() string {
	switch k {
	case KindCallback:
		return "callback"
	case KindVoice:
		return "voice"
	case KindText:
		return "text"
	default:
		return "unsupported"
	}
}

// Decision: 분류 결과와 후속 처리에 필요한 추출 필드의 묶음
type Decision struct {
	Kind Kind

	// FileID: Kind == KindVoice일 때만 유효한 미디어 핸들
	FileID string

	// ChatID / HasChat: 폴백 회신 대상 대화방 (message.chat.id)
	ChatID  int64
	HasChat bool

	// Username: 발신자 식별자 (로깅용, 없을 수 있음)
	Username string
}

// Classify: 원본 페이로드에 대한 순차 필드 존재 검사로 처리 경로를 결정한다.
// 우선순위는 callback → voice/audio → text → unsupported로 고정이다.
func Classify(raw []byte) Decision {
	d := Decision{Username: gjson.GetBytes(raw, "message.from.username").String()}

	if chat := gjson.GetBytes(raw, "message.chat.id"); chat.Exists() {
		d.ChatID = chat.Int()
		d.HasChat = true
	}

	if gjson.GetBytes(raw, "callback_query").Exists() {
		d.Kind = KindCallback
		return d
	}

	// voice가 audio보다 우선한다
	if voice := gjson.GetBytes(raw, "message.voice.file_id"); voice.Exists() {
		d.Kind = KindVoice
		d.FileID = voice.String()
		return d
	}
	if audio := gjson.GetBytes(raw, "message.audio.file_id"); audio.Exists() {
		d.Kind = KindVoice
		d.FileID = audio.String()
		return d
	}

	if gjson.GetBytes(raw, "message.text").Exists() {
		d.Kind = KindText
		return d
	}

	d.Kind = KindUnsupported
	return d
}

// SubstituteText: 원본 페이로드의 message.text만 변환 결과로 치환한 사본을 반환한다.
// 나머지 바이트(voice.file_id 포함)는 그대로 보존된다.
func SubstituteText(raw []byte, text string) ([]byte, error) {
	out, err := sjson.SetBytes(raw, "message.text", text)
	if err != nil {
		return nil, fmt.Errorf("substitute transcript into payload: %w", err)
	}
	return out, nil
}
