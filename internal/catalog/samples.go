package catalog

// Samples returns the built-in demo catalog served when no components
// directory is configured.
func Samples() *Catalog {
	return New(sampleComponents(), sampleDocumentation())
}

func sampleComponents() map[string]Component {
	return map[string]Component{
		"Button": {
			Name:        "Button",
			Description: "A customizable button component with various styles and sizes",
			SourceCode: `import React from 'react';
import './Button.css';

interface ButtonProps {
  children: React.ReactNode;
  variant?: 'primary' | 'secondary' | 'danger';
  size?: 'small' | 'medium' | 'large';
  disabled?: boolean;
  onClick?: () => void;
  className?: string;
}

export const Button: React.FC<ButtonProps> = ({
  children,
  variant = 'primary',
  size = 'medium',
  disabled = false,
  onClick,
  className = '',
}) => {
  const baseClasses = 'btn';
  const variantClass = ` + "`btn--${variant}`" + `;
  const sizeClass = ` + "`btn--${size}`" + `;
  const disabledClass = disabled ? 'btn--disabled' : '';

  const classes = [baseClasses, variantClass, sizeClass, disabledClass, className]
    .filter(Boolean)
    .join(' ');

  return (
    <button
      className={classes}
      disabled={disabled}
      onClick={onClick}
      type="button"
    >
      {children}
    </button>
  );
};

export default Button;`,
			Props: []Prop{
				{Name: "children", Type: "React.ReactNode", Required: true, Description: "The content to display inside the button"},
				{Name: "variant", Type: "'primary' | 'secondary' | 'danger'", DefaultValue: "'primary'", Description: "The visual style variant of the button"},
				{Name: "size", Type: "'small' | 'medium' | 'large'", DefaultValue: "'medium'", Description: "The size of the button"},
				{Name: "disabled", Type: "boolean", DefaultValue: "false", Description: "Whether the button is disabled"},
				{Name: "onClick", Type: "() => void", Description: "Function to call when button is clicked"},
			},
			Examples: []Example{
				{
					Title:       "Basic Usage",
					Description: "A simple primary button",
					Code: `<Button onClick={() => console.log('clicked')}>
  Click me
</Button>`,
					Props: map[string]any{},
				},
				{
					Title:       "Secondary Button",
					Description: "A secondary variant button",
					Code: `<Button variant="secondary" size="large">
  Secondary Action
</Button>`,
					Props: map[string]any{},
				},
				{
					Title:       "Danger Button",
					Description: "A danger variant for destructive actions",
					Code: `<Button variant="danger" onClick={() => handleDelete()}>
  Delete Item
</Button>`,
					Props: map[string]any{},
				},
			},
			Category:              "UI",
			Tags:                  []string{"button", "interactive", "form"},
			TypescriptDefinitions: StringPtr("export interface ButtonProps { ... }"),
		},
		"Card": {
			Name:        "Card",
			Description: "A flexible card component for displaying content with optional header and footer",
			SourceCode: `import React from 'react';
import './Card.css';

interface CardProps {
  children: React.ReactNode;
  title?: string;
  subtitle?: string;
  footer?: React.ReactNode;
  className?: string;
  elevation?: 'none' | 'low' | 'medium' | 'high';
}

export const Card: React.FC<CardProps> = ({
  children,
  title,
  subtitle,
  footer,
  className = '',
  elevation = 'medium',
}) => {
  const baseClasses = 'card';
  const elevationClass = ` + "`card--elevation-${elevation}`" + `;
  const classes = [baseClasses, elevationClass, className]
    .filter(Boolean)
    .join(' ');

  return (
    <div className={classes}>
      {(title || subtitle) && (
        <div className="card__header">
          {title && <h3 className="card__title">{title}</h3>}
          {subtitle && <p className="card__subtitle">{subtitle}</p>}
        </div>
      )}
      <div className="card__content">
        {children}
      </div>
      {footer && (
        <div className="card__footer">
          {footer}
        </div>
      )}
    </div>
  );
};

export default Card;`,
			Props: []Prop{
				{Name: "children", Type: "React.ReactNode", Required: true, Description: "The main content of the card"},
				{Name: "title", Type: "string", Description: "Optional title for the card header"},
				{Name: "elevation", Type: "'none' | 'low' | 'medium' | 'high'", DefaultValue: "'medium'", Description: "The shadow elevation level of the card"},
			},
			Examples: []Example{
				{
					Title:       "Basic Card",
					Description: "A simple card with title and content",
					Code: `<Card title="Welcome" subtitle="Getting started">
  <p>This is the main content of the card.</p>
</Card>`,
					Props: map[string]any{},
				},
			},
			Category:              "Layout",
			Tags:                  []string{"card", "container", "layout"},
			TypescriptDefinitions: StringPtr("export interface CardProps { ... }"),
		},
		"Input": {
			Name:        "Input",
			Description: "A controlled input component with validation and various types",
			SourceCode: `import React from 'react';
import './Input.css';

interface InputProps {
  value: string;
  onChange: (value: string) => void;
  type?: 'text' | 'email' | 'password' | 'number';
  placeholder?: string;
  label?: string;
  error?: string;
  disabled?: boolean;
  required?: boolean;
  className?: string;
}

export const Input: React.FC<InputProps> = ({
  value,
  onChange,
  type = 'text',
  placeholder,
  label,
  error,
  disabled = false,
  required = false,
  className = '',
}) => {
  const inputId = React.useId();
  const hasError = Boolean(error);

  const inputClasses = [
    'input__field',
    hasError ? 'input__field--error' : '',
    disabled ? 'input__field--disabled' : '',
    className
  ].filter(Boolean).join(' ');

  return (
    <div className="input">
      {label && (
        <label htmlFor={inputId} className="input__label">
          {label}
          {required && <span className="input__required">*</span>}
        </label>
      )}
      <input
        id={inputId}
        type={type}
        value={value}
        onChange={(e) => onChange(e.target.value)}
        placeholder={placeholder}
        disabled={disabled}
        required={required}
        className={inputClasses}
        aria-invalid={hasError}
        aria-describedby={hasError ? ` + "`${inputId}-error`" + ` : undefined}
      />
      {error && (
        <span id={` + "`${inputId}-error`" + `} className="input__error">
          {error}
        </span>
      )}
    </div>
  );
};

export default Input;`,
			Props: []Prop{
				{Name: "value", Type: "string", Required: true, Description: "The current value of the input"},
				{Name: "onChange", Type: "(value: string) => void", Required: true, Description: "Function called when input value changes"},
				{Name: "type", Type: "'text' | 'email' | 'password' | 'number'", DefaultValue: "'text'", Description: "The type of input field"},
			},
			Examples: []Example{
				{
					Title:       "Basic Input",
					Description: "A simple text input with label",
					Code: `<Input
  value={inputValue}
  onChange={setInputValue}
  label="Your Name"
  placeholder="Enter your name"
/>`,
					Props: map[string]any{},
				},
			},
			Category:              "Form",
			Tags:                  []string{"input", "form", "validation"},
			TypescriptDefinitions: StringPtr("export interface InputProps { ... }"),
		},
	}
}

func sampleDocumentation() map[string]Documentation {
	return map[string]Documentation{
		"getting-started": {
			Topic:   "getting-started",
			Title:   "Getting Started with React Components",
			Content: "Welcome to our React component library! This guide will help you get started with using our components in your projects.",
			Sections: []Section{
				{
					ID:      "installation",
					Title:   "Installation",
					Content: "Install the component library using npm or yarn:",
					CodeExamples: []string{
						"npm install @yourorg/react-components",
						"yarn add @yourorg/react-components",
					},
				},
				{
					ID:      "usage",
					Title:   "Basic Usage",
					Content: "Import and use components in your React application:",
					CodeExamples: []string{`import { Button, Card, Input } from '@yourorg/react-components';

function App() {
  return (
    <div>
      <Card title="Welcome">
        <Input value="" onChange={() => {}} placeholder="Enter text" />
        <Button>Submit</Button>
      </Card>
    </div>
  );
}`},
				},
			},
			Examples:          []string{"Basic component usage", "Theming and customization"},
			RelatedComponents: []string{"Button", "Card", "Input"},
		},
		"theming": {
			Topic:   "theming",
			Title:   "Theming and Customization",
			Content: "Learn how to customize the appearance of components using CSS variables and custom themes.",
			Sections: []Section{
				{
					ID:      "css-variables",
					Title:   "CSS Variables",
					Content: "Use CSS custom properties to customize component appearance:",
					CodeExamples: []string{`:root {
  --btn-primary-bg: #007bff;
  --btn-primary-color: white;
  --card-border-radius: 8px;
  --input-border-color: #ddd;
}`},
				},
			},
			Examples:          []string{"Dark theme setup", "Custom color schemes"},
			RelatedComponents: []string{"Button", "Card"},
		},
	}
}
